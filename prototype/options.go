package prototype

import (
	"github.com/gogpu/girih/internal/cache"
	"github.com/gogpu/girih/planar"
)

// DefaultMaxUniqueTiles is the number of distinct tile shapes a prototype
// accepts unless configured otherwise.
const DefaultMaxUniqueTiles = 7

// DefaultCacheSize is the number of motif maps memoised by default.
const DefaultCacheSize = 256

// Option configures a Prototype during creation.
//
// Example:
//
//	p, err := prototype.New(t, prototype.WithMaxUniqueTiles(12))
type Option func(*options)

type options struct {
	maxUnique int
	cacheSize int
	cache     *cache.Cache[string, *planar.Map]
	cleanse   planar.CleanseLevel
}

func defaultOptions() options {
	return options{
		maxUnique: DefaultMaxUniqueTiles,
		cacheSize: DefaultCacheSize,
	}
}

// WithMaxUniqueTiles sets the cap on distinct tile shapes. Values below
// one are ignored.
func WithMaxUniqueTiles(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUnique = n
		}
	}
}

// WithCacheSize sets the number of memoised motif maps. Zero means
// unlimited.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}

// WithCache shares a motif map cache between prototypes.
func WithCache(c *cache.Cache[string, *planar.Map]) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCleanse cleanses the assembled map with level after every rebuild.
// Motif maps are always cleansed with planar.CleanseDefault; this adds
// passes over the seams between tiles, such as
// planar.CleanseJoinColinear.
func WithCleanse(level planar.CleanseLevel) Option {
	return func(o *options) {
		o.cleanse = level
	}
}
