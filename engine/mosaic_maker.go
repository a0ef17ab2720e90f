package engine

import (
	"slices"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/mosaic"
	"github.com/gogpu/girih/prototype"
)

// MosaicMaker keeps the session mosaic pointing at live prototypes. No
// mosaic exists until the first RENDER; events before that only update
// the list of prototypes the mosaic will be created from.
type MosaicMaker struct {
	mosaic  *mosaic.Mosaic
	pending []*prototype.Prototype
	stale   bool
}

// NewMosaicMaker returns a coordinator with no mosaic.
func NewMosaicMaker() *MosaicMaker {
	return &MosaicMaker{}
}

// Mosaic returns the mosaic, or nil before the first RENDER.
func (mm *MosaicMaker) Mosaic() *mosaic.Mosaic {
	return mm.mosaic
}

// SetMosaic replaces the mosaic, for example with one read from disk.
func (mm *MosaicMaker) SetMosaic(m *mosaic.Mosaic) {
	mm.mosaic = m
	mm.stale = true
}

// State reports the mosaic's state; EMPTY when there is none.
func (mm *MosaicMaker) State() State {
	if mm.mosaic == nil {
		return StateEmpty
	}
	switch mm.mosaic.State() {
	case mosaic.StateSingle:
		return StateSingle
	case mosaic.StateMulti:
		return StateMulti
	}
	return StateEmpty
}

// IsStale reports whether the mosaic needs redrawing.
func (mm *MosaicMaker) IsStale() bool {
	return mm.stale
}

// Handle applies an event forwarded by the prototype maker.
func (mm *MosaicMaker) Handle(ev event.Event) (Result, error) {
	switch ev.Type {
	case event.LoadEmpty:
		mm.pending = nil
		if mm.mosaic != nil {
			for _, p := range mm.mosaic.Prototypes() {
				mm.mosaic.RemovePrototype(p)
			}
		}
	case event.LoadSingle:
		mm.pending = slices.Clone(ev.Prototypes)
		if mm.mosaic != nil && len(ev.Prototypes) > 0 {
			mm.replaceAll(ev.Prototypes[0])
		}
	case event.LoadMulti:
		mm.pending = append(mm.pending, ev.Prototypes...)
		if mm.mosaic != nil {
			for _, p := range ev.Prototypes {
				mm.mosaic.AddStyle(mosaic.NewStyle(mosaic.StyleThick, p))
			}
		}
	case event.Render:
		if mm.mosaic == nil {
			mm.create()
		}
		mm.stale = false
		girih.Logger().Debug("engine: render", "styles", len(mm.mosaic.Styles()))
		return Result{Forward: ev, Changed: true}, nil
	}
	// Reloads and fine-grained edits keep prototype identity, so the
	// styles already point at the right objects.
	mm.stale = true
	return Result{Forward: ev, Changed: mm.mosaic != nil}, nil
}

// replaceAll points every style at p, adding one if the mosaic has none.
func (mm *MosaicMaker) replaceAll(p *prototype.Prototype) {
	olds := mm.mosaic.Prototypes()
	if len(olds) == 0 {
		mm.mosaic.AddStyle(mosaic.NewStyle(mosaic.StyleThick, p))
		return
	}
	for _, old := range olds {
		mm.mosaic.ReplacePrototype(old, p)
	}
}

func (mm *MosaicMaker) create() {
	mm.mosaic = mosaic.New("mosaic")
	for _, p := range mm.pending {
		mm.mosaic.AddStyle(mosaic.NewStyle(mosaic.StyleThick, p))
	}
}
