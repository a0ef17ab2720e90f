package engine

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/event"
)

// Cycler feeds a sequence of events to a Context on a timer, one per
// tick. A tick that finds the context busy is skipped and the same event
// is retried on the next one.
type Cycler struct {
	ctx      *Context
	interval time.Duration
	next     func() (event.Event, bool)
	done     func(event.Event, error)
}

// NewCycler returns a cycler that asks next for the event to dispatch.
// next reports false when the sequence is exhausted.
func NewCycler(c *Context, interval time.Duration, next func() (event.Event, bool)) *Cycler {
	return &Cycler{ctx: c, interval: interval, next: next}
}

// OnDone installs a callback run after every dispatched event.
func (cy *Cycler) OnDone(fn func(event.Event, error)) {
	cy.done = fn
}

// Run dispatches events until the sequence ends or ctx is cancelled. It
// returns the number of events dispatched and ctx.Err() on cancellation.
func (cy *Cycler) Run(ctx context.Context) (int, error) {
	ticker := time.NewTicker(cy.interval)
	defer ticker.Stop()

	n := 0
	var (
		pending event.Event
		have    bool
	)
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case <-ticker.C:
		}
		if !have {
			ev, ok := cy.next()
			if !ok {
				return n, nil
			}
			pending, have = ev, true
		}
		err := cy.ctx.Dispatch(pending)
		if errors.Is(err, ErrBusy) {
			girih.Logger().Debug("engine: cycler tick skipped", "event", pending.Type)
			continue
		}
		have = false
		n++
		if cy.done != nil {
			cy.done(pending, err)
		}
	}
}

// Sequence returns a next function yielding evs in order.
func Sequence(evs ...event.Event) func() (event.Event, bool) {
	i := 0
	return func() (event.Event, bool) {
		if i >= len(evs) {
			return event.Event{}, false
		}
		i++
		return evs[i-1], true
	}
}
