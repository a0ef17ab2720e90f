package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/tiling"
	"github.com/gogpu/girih/tilingmaker"
)

// ErrBusy is returned by Dispatch while another pass is running.
var ErrBusy = errors.New("engine: busy")

// Context is one design session.
type Context struct {
	tm   *tilingmaker.Maker
	pm   *PrototypeMaker
	mm   *MosaicMaker
	busy atomic.Bool
}

// New returns a session with an empty tiling loaded.
func New(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		girih.SetLogger(o.logger)
	}
	c := &Context{
		tm: tilingmaker.New(),
		pm: newSharedPrototypeMaker(o),
		mm: NewMosaicMaker(),
	}
	c.tm.Load(tiling.New(""))
	c.tm.SetSink(c.edited)
	return c
}

// TilingMaker returns the tiling editor. Its edits are dispatched
// automatically; an edit rejected downstream is undone and its mutator
// returns the error.
func (c *Context) TilingMaker() *tilingmaker.Maker {
	return c.tm
}

// PrototypeMaker returns the prototype coordinator.
func (c *Context) PrototypeMaker() *PrototypeMaker {
	return c.pm
}

// MosaicMaker returns the mosaic coordinator.
func (c *Context) MosaicMaker() *MosaicMaker {
	return c.mm
}

// Busy reports whether a pass is running.
func (c *Context) Busy() bool {
	return c.busy.Load()
}

// Dispatch runs ev through every stage. Load and reload events make
// ev.Tiling the edited tiling once the prototype stage accepts it. On
// error the stage that failed and every later one are left unchanged.
func (c *Context) Dispatch(ev event.Event) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)
	return c.dispatch(ev)
}

func (c *Context) dispatch(ev event.Event) error {
	switch ev.Type {
	case event.LoadEmpty:
		if ev.Tiling == nil {
			ev.Tiling = tiling.New("")
		}
	case event.LoadSingle, event.ReloadSingle, event.LoadMulti, event.ReloadMulti:
		if ev.Tiling == nil {
			ev.Tiling = c.tm.Tiling()
		}
	}
	res, err := c.pm.Handle(ev)
	if err != nil {
		return fmt.Errorf("prototype: %s: %w", ev.Type, err)
	}
	switch ev.Type {
	case event.LoadEmpty, event.LoadSingle, event.ReloadSingle, event.LoadMulti, event.ReloadMulti:
		c.load(ev.Tiling)
	}
	if _, err := c.mm.Handle(res.Forward); err != nil {
		return fmt.Errorf("mosaic: %s: %w", ev.Type, err)
	}
	girih.Logger().Debug("engine: dispatched", "event", res.Forward, "state", c.pm.State())
	return nil
}

func (c *Context) load(t *tiling.Tiling) {
	if c.tm.Tiling() != t {
		c.tm.Load(t)
	}
}

// edited receives events from the tiling maker. Returning an error makes
// the maker undo the edit.
func (c *Context) edited(ev event.Event) error {
	err := c.Dispatch(ev)
	if err != nil {
		girih.Logger().Warn("engine: edit rejected", "event", ev.Type, "err", err)
	}
	return err
}
