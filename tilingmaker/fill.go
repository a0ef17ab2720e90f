package tilingmaker

import (
	"slices"

	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

// SetVector records a translation vector in a two-slot ring: each call
// overwrites the slot set least recently.
func (m *Maker) SetVector(v geom.Point) error {
	if m.tiling == nil {
		m.vectors[m.next] = v
		m.next = 1 - m.next
		return nil
	}
	before := m.save()
	m.vectors[m.next] = v
	m.next = 1 - m.next
	return m.applyVectors(before)
}

// SetTranslations sets both translation vectors.
func (m *Maker) SetTranslations(t1, t2 geom.Point) error {
	if m.tiling == nil {
		m.vectors, m.next = [2]geom.Point{t1, t2}, 0
		return nil
	}
	before := m.save()
	m.vectors, m.next = [2]geom.Point{t1, t2}, 0
	return m.applyVectors(before)
}

// Vectors returns the translation vectors.
func (m *Maker) Vectors() (t1, t2 geom.Point) {
	return m.vectors[0], m.vectors[1]
}

func (m *Maker) applyVectors(before saved) error {
	m.tiling.SetTranslations(m.vectors[0], m.vectors[1])
	return m.changed(before, event.TilingChanged, tile.NoID)
}

// UpdateVectors reloads the vectors from the tiling, after they were set
// on it directly, and regenerates any fill.
func (m *Maker) UpdateVectors() {
	if m.tiling == nil {
		return
	}
	m.vectors[0], m.vectors[1] = m.tiling.Vectors()
	m.UpdateReps()
}

// UpdateReps regenerates the fill copies from the tiling's current
// placements, vectors and window.
func (m *Maker) UpdateReps() {
	m.refill()
	m.recomputeStatus()
}

// SetFillWindow changes the fill window and regenerates any fill.
func (m *Maker) SetFillWindow(w tiling.FillWindow) error {
	if m.tiling == nil {
		return ErrNoTiling
	}
	before := m.save()
	m.tiling.SetFillWindow(w)
	return m.changed(before, event.TilingChanged, tile.NoID)
}

// IsFilled reports whether fill copies are present.
func (m *Maker) IsFilled() bool {
	return m.filled != nil
}

// Filled returns the generated copies.
func (m *Maker) Filled() []*tile.PlacedTile {
	return slices.Clone(m.filled)
}

// FillUsingTranslations toggles the fill. The first call adds a copy of
// every tiling placement for each cell of the fill window other than the
// origin; the next call removes exactly those copies. An invalid tiling
// is refused with the reason.
func (m *Maker) FillUsingTranslations() (bool, string) {
	if m.filled != nil {
		m.clearFill()
		return true, ""
	}
	if ok, reason := m.Validate(); !ok {
		return false, reason
	}
	m.fill()
	return true, ""
}

func (m *Maker) fill() {
	placed := m.tiling.InTiling()
	m.filled = make([]*tile.PlacedTile, 0, len(placed)*m.tiling.FillWindow().Count())
	for _, tr := range m.tiling.Translations() {
		if tr.IsIdentity() {
			continue
		}
		for _, p := range placed {
			c := m.tiling.NewPlacement(p.Tile, tr.Multiply(p.Transform))
			m.filled = append(m.filled, c)
		}
	}
	m.all = append(m.all, m.filled...)
}

func (m *Maker) clearFill() {
	m.all = m.all[:len(m.all)-len(m.filled)]
	m.filled = nil
}

// refill regenerates an existing fill; it does nothing when unfilled or
// when the tiling has become invalid.
func (m *Maker) refill() {
	if m.filled == nil {
		return
	}
	m.clearFill()
	if ok, _ := m.Validate(); ok {
		m.fill()
	}
}
