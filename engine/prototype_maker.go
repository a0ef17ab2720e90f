package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/internal/cache"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tiling"
)

var (
	// ErrChoiceRequired is returned for RELOAD_MULTI in MULTI state
	// without a Choice.
	ErrChoiceRequired = errors.New("engine: reload with several prototypes requires a choice")

	// ErrUnknownEvent is returned for an event type no coordinator handles.
	ErrUnknownEvent = errors.New("engine: unknown event")
)

// PrototypeMaker holds the prototypes of a session and the selected one.
type PrototypeMaker struct {
	prototypes []*prototype.Prototype
	selected   *prototype.Prototype
	opts       []prototype.Option
}

// NewPrototypeMaker returns an empty coordinator. opts are passed to
// every prototype it builds.
func NewPrototypeMaker(opts ...prototype.Option) *PrototypeMaker {
	return &PrototypeMaker{opts: opts}
}

func newSharedPrototypeMaker(o options) *PrototypeMaker {
	maps := cache.New[string, *planar.Map](o.cacheSize)
	return NewPrototypeMaker(
		prototype.WithMaxUniqueTiles(o.maxUnique),
		prototype.WithCache(maps),
		prototype.WithCleanse(o.cleanse),
	)
}

// State reports EMPTY, SINGLE or MULTI.
func (pm *PrototypeMaker) State() State {
	switch len(pm.prototypes) {
	case 0:
		return StateEmpty
	case 1:
		if len(pm.prototypes[0].Elements()) == 0 {
			return StateEmpty
		}
		return StateSingle
	}
	return StateMulti
}

// Prototypes returns the prototypes in load order.
func (pm *PrototypeMaker) Prototypes() []*prototype.Prototype {
	return slices.Clone(pm.prototypes)
}

// Selected returns the prototype edits apply to, or nil.
func (pm *PrototypeMaker) Selected() *prototype.Prototype {
	return pm.selected
}

// Select makes p the selected prototype. It reports false if pm does not
// hold p.
func (pm *PrototypeMaker) Select(p *prototype.Prototype) bool {
	if !slices.Contains(pm.prototypes, p) {
		return false
	}
	pm.selected = p
	return true
}

// Using returns the prototypes decorating t.
func (pm *PrototypeMaker) Using(t *tiling.Tiling) []*prototype.Prototype {
	var out []*prototype.Prototype
	for _, p := range pm.prototypes {
		if p.Tiling() == t {
			out = append(out, p)
		}
	}
	return out
}

// Handle applies ev. Load events build new prototypes; reload events
// swap the tiling of an existing prototype and keep its motifs. On error
// nothing changes.
func (pm *PrototypeMaker) Handle(ev event.Event) (Result, error) {
	switch ev.Type {
	case event.LoadEmpty:
		return pm.clear(), nil
	case event.LoadSingle:
		return pm.loadSingle(ev)
	case event.ReloadSingle:
		return pm.reload(ev)
	case event.LoadMulti:
		return pm.add(ev)
	case event.ReloadMulti:
		return pm.reloadMulti(ev)
	case event.TileEdgesChanged, event.TilingChanged:
		return pm.resync(ev)
	case event.MotifChanged:
		return pm.motifChanged(ev), nil
	case event.Render:
		ev.Prototypes = pm.Prototypes()
		return Result{Forward: ev}, nil
	}
	return Result{}, fmt.Errorf("%w: %v", ErrUnknownEvent, ev.Type)
}

func (pm *PrototypeMaker) clear() Result {
	changed := len(pm.prototypes) > 0
	pm.prototypes = nil
	pm.selected = nil
	return Result{Forward: event.Event{Type: event.LoadEmpty}, Changed: changed}
}

func (pm *PrototypeMaker) build(t *tiling.Tiling) (*prototype.Prototype, error) {
	p, err := prototype.New(t, pm.opts...)
	if err != nil {
		girih.Logger().Warn("engine: prototype rejected", "tiling", t.Name(), "err", err)
		return nil, err
	}
	return p, nil
}

func (pm *PrototypeMaker) loadSingle(ev event.Event) (Result, error) {
	if ev.Tiling == nil || ev.Tiling.NumPlaced() == 0 {
		return pm.clear(), nil
	}
	p, err := pm.build(ev.Tiling)
	if err != nil {
		return Result{}, err
	}
	pm.prototypes = []*prototype.Prototype{p}
	pm.selected = p
	ev.Prototypes = []*prototype.Prototype{p}
	return Result{Forward: ev, Changed: true}, nil
}

func (pm *PrototypeMaker) add(ev event.Event) (Result, error) {
	if ev.Tiling == nil {
		return Result{}, prototype.ErrNoTiling
	}
	p, err := pm.build(ev.Tiling)
	if err != nil {
		return Result{}, err
	}
	pm.prototypes = append(pm.prototypes, p)
	pm.selected = p
	ev.Type = event.LoadMulti
	ev.Prototypes = []*prototype.Prototype{p}
	return Result{Forward: ev, Changed: true}, nil
}

// reload swaps the tiling of the prototype already decorating it, or of
// the selected prototype. With nothing loaded it builds one.
func (pm *PrototypeMaker) reload(ev event.Event) (Result, error) {
	if ev.Tiling == nil {
		return Result{}, prototype.ErrNoTiling
	}
	if pm.selected == nil {
		ev.Type = event.LoadSingle
		return pm.loadSingle(ev)
	}
	target := pm.selected
	if using := pm.Using(ev.Tiling); len(using) > 0 {
		target = using[0]
	}
	if err := target.SetTiling(ev.Tiling); err != nil {
		girih.Logger().Warn("engine: reload rejected", "tiling", ev.Tiling.Name(), "err", err)
		return Result{}, err
	}
	ev.Prototypes = []*prototype.Prototype{target}
	return Result{Forward: ev, Changed: true}, nil
}

func (pm *PrototypeMaker) reloadMulti(ev event.Event) (Result, error) {
	if pm.State() == StateMulti && ev.Choice == event.ChoiceNone {
		return Result{}, ErrChoiceRequired
	}
	if ev.Choice == event.ChoiceCreatePrototype {
		return pm.add(ev)
	}
	return pm.reload(ev)
}

func (pm *PrototypeMaker) resync(ev event.Event) (Result, error) {
	using := pm.Using(ev.Tiling)
	for i, p := range using {
		if err := p.Resync(); err != nil {
			// The tiling was edited in place, so every map drawn from it
			// is out of date whether or not regrouping succeeded.
			for _, q := range using[i:] {
				q.ResetProtoMap()
			}
			girih.Logger().Warn("engine: resync rejected", "tiling", ev.Tiling.Name(), "err", err)
			ev.Prototypes = using[:i]
			return Result{Forward: ev, Changed: i > 0}, err
		}
	}
	ev.Prototypes = using
	return Result{Forward: ev, Changed: len(using) > 0}, nil
}

func (pm *PrototypeMaker) motifChanged(ev event.Event) Result {
	using := pm.Using(ev.Tiling)
	if ev.Tiling == nil && pm.selected != nil {
		using = []*prototype.Prototype{pm.selected}
	}
	for _, p := range using {
		p.ResetProtoMap()
	}
	ev.Prototypes = using
	return Result{Forward: ev, Changed: len(using) > 0}
}
