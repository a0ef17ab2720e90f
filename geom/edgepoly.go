package geom

// EdgePoly is a closed polygon whose edges may be arcs. Edge i runs from
// the end of edge i-1 to the start of edge i+1.
type EdgePoly []Segment

// EdgePolyFromPolygon builds an all-line EdgePoly.
func EdgePolyFromPolygon(p Polygon) EdgePoly {
	return EdgePoly(p.Edges())
}

// Polygon returns the corner points (the start of every edge).
func (ep EdgePoly) Polygon() Polygon {
	out := make(Polygon, len(ep))
	for i, e := range ep {
		out[i] = e.P0
	}
	return out
}

// Points samples the outline, subdividing arcs into n pieces. The closing
// point is not repeated.
func (ep EdgePoly) Points(n int) Polygon {
	var out Polygon
	for _, e := range ep {
		pts := e.Points(n)
		out = append(out, pts[:len(pts)-1]...)
	}
	return out
}

// Transform applies m to every edge.
func (ep EdgePoly) Transform(m Matrix) EdgePoly {
	out := make(EdgePoly, len(ep))
	for i, e := range ep {
		out[i] = e.Transform(m)
	}
	return out
}

// Bounds returns the bounding rectangle including arc bulges.
func (ep EdgePoly) Bounds() Rect {
	r := EmptyRect()
	for _, e := range ep {
		r = r.Union(e.Bounds())
	}
	return r
}

// HasCurves reports whether any edge is an arc or chord.
func (ep EdgePoly) HasCurves() bool {
	for _, e := range ep {
		if e.Kind != KindLine {
			return true
		}
	}
	return false
}
