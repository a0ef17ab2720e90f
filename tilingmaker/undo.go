package tilingmaker

import (
	"fmt"
	"slices"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

// saved is the maker state taken before a mutation.
type saved struct {
	tiling  tiling.Snapshot
	all     []*tile.PlacedTile
	values  []tile.PlacedTile
	filled  []*tile.PlacedTile
	vectors [2]geom.Point
	next    int
}

// save records everything a mutation may touch. The tiling must be
// loaded.
func (m *Maker) save() saved {
	s := saved{
		tiling:  m.tiling.Snapshot(),
		all:     slices.Clone(m.all),
		values:  make([]tile.PlacedTile, len(m.all)),
		filled:  slices.Clone(m.filled),
		vectors: m.vectors,
		next:    m.next,
	}
	for i, p := range m.all {
		s.values[i] = *p
	}
	return s
}

// restore undoes every change made since s was saved. Placements keep
// their identity.
func (m *Maker) restore(s saved) {
	m.tiling.Restore(s.tiling)
	m.all = s.all
	for i, p := range m.all {
		*p = s.values[i]
	}
	m.filled = s.filled
	m.vectors, m.next = s.vectors, s.next
	m.recomputeStatus()
}

// changed refreshes fill copies and overlap status and emits an event.
// If the sink rejects the edit, the state in before is restored and the
// restored tiling is announced again so that receivers which accepted
// the edit catch up.
func (m *Maker) changed(before saved, typ event.Type, id tile.ID) error {
	m.refill()
	m.recomputeStatus()
	girih.Logger().Debug("tilingmaker: edit", "event", typ, "tile", id, "held", len(m.all))
	ev := event.Event{Type: typ, Tiling: m.tiling, Tile: id}
	err := m.sink(ev)
	if err == nil {
		return nil
	}
	m.restore(before)
	girih.Logger().Warn("tilingmaker: edit rolled back", "event", typ, "tile", id, "err", err)
	ev.Tile = tile.NoID
	if again := m.sink(ev); again != nil {
		girih.Logger().Warn("tilingmaker: rollback not propagated", "event", typ, "err", again)
	}
	return fmt.Errorf("%w: %w", ErrRejected, err)
}
