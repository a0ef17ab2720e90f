package engine

import (
	"log/slog"

	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/prototype"
)

// Option configures a Context during creation.
//
// Example:
//
//	ctx := engine.New(engine.WithMaxUniqueTiles(12))
type Option func(*options)

type options struct {
	logger    *slog.Logger
	maxUnique int
	cacheSize int
	cleanse   planar.CleanseLevel
}

func defaultOptions() options {
	return options{
		maxUnique: prototype.DefaultMaxUniqueTiles,
		cacheSize: prototype.DefaultCacheSize,
	}
}

// WithLogger installs l as the package-wide logger. See girih.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxUniqueTiles sets the cap on distinct tile shapes per prototype.
func WithMaxUniqueTiles(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUnique = n
		}
	}
}

// WithCacheSize sets the size of the motif map cache shared by every
// prototype of the session. Zero means unlimited.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}

// WithCleanse cleanses every assembled proto map at the given level.
func WithCleanse(level planar.CleanseLevel) Option {
	return func(o *options) {
		o.cleanse = level
	}
}
