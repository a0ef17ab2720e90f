package tilingmaker

import (
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/tile"
)

// Status classifies a tiling placement against the others.
type Status int

const (
	// StatusNormal is a placement that meets no other.
	StatusNormal Status = iota
	// StatusOverlapping is a placement whose interior intersects another.
	StatusOverlapping
	// StatusTouching is a placement sharing boundary with another.
	StatusTouching
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOverlapping:
		return "overlapping"
	case StatusTouching:
		return "touching"
	}
	return "normal"
}

// overlapTolerance absorbs rounding along shared edges.
const overlapTolerance = 1e-6

// Status returns the classification of p. Placements outside the tiling
// are normal.
func (m *Maker) Status(p *tile.PlacedTile) Status {
	return m.status[p]
}

// Overlapping returns the tiling placements that overlap another.
func (m *Maker) Overlapping() []*tile.PlacedTile {
	var out []*tile.PlacedTile
	for _, p := range m.InTiling() {
		if m.status[p] == StatusOverlapping {
			out = append(out, p)
		}
	}
	return out
}

func (m *Maker) recomputeStatus() {
	clear(m.status)
	if m.tiling == nil {
		return
	}
	placed := m.tiling.InTiling()
	outlines := make([]geom.Polygon, len(placed))
	for i, p := range placed {
		outlines[i] = p.WorldOutline(m.tiling.Arena())
		m.status[p] = StatusNormal
	}
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			a, b := outlines[i], outlines[j]
			switch {
			case geom.Overlaps(a, b, overlapTolerance):
				m.status[placed[i]] = StatusOverlapping
				m.status[placed[j]] = StatusOverlapping
			case geom.Touches(a, b, overlapTolerance):
				m.mark(placed[i], StatusTouching)
				m.mark(placed[j], StatusTouching)
			}
		}
	}
}

// mark raises p to s unless it is already overlapping.
func (m *Maker) mark(p *tile.PlacedTile, s Status) {
	if m.status[p] != StatusOverlapping {
		m.status[p] = s
	}
}
