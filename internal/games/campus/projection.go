package campus

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
)

// mapMargin pads the catalog bound so edge buildings are not flush with
// the frame.
const mapMargin = 0.12

// Projection maps between coordinates and the cells of the map area using
// a plain equirectangular fit of the padded bound.
type Projection struct {
	area  core.Rect
	bound orb.Bound
}

// NewProjection fits bound into area.
func NewProjection(area core.Rect, bound orb.Bound) Projection {
	w := bound.Max[0] - bound.Min[0]
	h := bound.Max[1] - bound.Min[1]
	pad := math.Max(w, h) * mapMargin
	if pad == 0 {
		pad = 0.001
	}
	return Projection{
		area: area,
		bound: orb.Bound{
			Min: orb.Point{bound.Min[0] - pad, bound.Min[1] - pad},
			Max: orb.Point{bound.Max[0] + pad, bound.Max[1] + pad},
		},
	}
}

// Area returns the screen rectangle the map occupies.
func (p Projection) Area() core.Rect {
	return p.area
}

// LatLng returns the coordinate at the center of a map cell.
func (p Projection) LatLng(cell core.Point) geo.LatLng {
	fx := (float64(cell.X-p.area.X) + 0.5) / float64(p.area.W)
	fy := (float64(cell.Y-p.area.Y) + 0.5) / float64(p.area.H)
	return geo.LatLng{
		Lat: p.bound.Max[1] - fy*(p.bound.Max[1]-p.bound.Min[1]),
		Lng: p.bound.Min[0] + fx*(p.bound.Max[0]-p.bound.Min[0]),
	}
}

// Cell returns the map cell containing a coordinate, clamped to the area.
func (p Projection) Cell(ll geo.LatLng) core.Point {
	fx := (ll.Lng - p.bound.Min[0]) / (p.bound.Max[0] - p.bound.Min[0])
	fy := (p.bound.Max[1] - ll.Lat) / (p.bound.Max[1] - p.bound.Min[1])
	cell := core.Point{
		X: p.area.X + int(math.Floor(fx*float64(p.area.W))),
		Y: p.area.Y + int(math.Floor(fy*float64(p.area.H))),
	}
	return p.area.ClampPoint(cell)
}

// CellMeters returns the approximate ground size of one cell.
func (p Projection) CellMeters() (w, h float64) {
	if p.area.Empty() {
		return 0, 0
	}
	midLat := (p.bound.Min[1] + p.bound.Max[1]) / 2
	west := geo.LatLng{Lat: midLat, Lng: p.bound.Min[0]}
	east := geo.LatLng{Lat: midLat, Lng: p.bound.Max[0]}
	south := geo.LatLng{Lat: p.bound.Min[1], Lng: p.bound.Min[0]}
	north := geo.LatLng{Lat: p.bound.Max[1], Lng: p.bound.Min[0]}
	return geo.DistanceMeters(west, east) / float64(p.area.W),
		geo.DistanceMeters(south, north) / float64(p.area.H)
}
