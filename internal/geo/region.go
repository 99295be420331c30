// Package geo models the named campus regions a player is asked to find and
// answers the one spatial question the game needs: is this point inside that
// region. Polygons are handled with orb in (lng, lat) order.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrInvalidRegion is wrapped by every Validate failure.
var ErrInvalidRegion = errors.New("geo: invalid region")

// LatLng is a WGS84 coordinate in degrees.
type LatLng struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Point converts the coordinate to an orb point (x = lng, y = lat).
func (p LatLng) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// FromPoint converts an orb point back to a coordinate.
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

func (p LatLng) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lng)
}

// Shape is the closed set of region outlines. Only the types in this
// package implement it.
type Shape interface {
	isShape()
}

// TwoCorner is an axis-aligned rectangle given by its north-west and
// south-east corners.
type TwoCorner struct {
	TopLeft     LatLng
	BottomRight LatLng
}

// Polygon is a precomputed outline, listed without the closing vertex.
type Polygon struct {
	Vertices []LatLng
}

func (TwoCorner) isShape() {}
func (Polygon) isShape()   {}

// Region is a named area on the map. Regions are immutable once defined.
type Region struct {
	Name  string
	Shape Shape
}

// NewRect builds a two-corner region.
func NewRect(name string, topLeft, bottomRight LatLng) Region {
	return Region{Name: name, Shape: TwoCorner{TopLeft: topLeft, BottomRight: bottomRight}}
}

// NewPolygon builds a region from explicit vertices.
func NewPolygon(name string, vertices ...LatLng) Region {
	return Region{Name: name, Shape: Polygon{Vertices: append([]LatLng(nil), vertices...)}}
}

// PolygonOf returns the outline of a region. A two-corner region yields the
// clockwise ring TL, TR, BR, BL; an explicit polygon yields its vertices as
// given. The closing vertex is never repeated.
func PolygonOf(r Region) []LatLng {
	switch s := r.Shape.(type) {
	case TwoCorner:
		return []LatLng{
			s.TopLeft,
			{Lat: s.TopLeft.Lat, Lng: s.BottomRight.Lng},
			s.BottomRight,
			{Lat: s.BottomRight.Lat, Lng: s.TopLeft.Lng},
		}
	case Polygon:
		return append([]LatLng(nil), s.Vertices...)
	default:
		return nil
	}
}

// Ring returns the region outline as a closed orb ring.
func Ring(r Region) orb.Ring {
	vertices := PolygonOf(r)
	if len(vertices) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, v.Point())
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}

// Validate checks the shape invariants: a two-corner region must have its
// top-left strictly north and west of its bottom-right, and a polygon needs
// at least three distinct vertices.
func (r Region) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRegion)
	}
	switch s := r.Shape.(type) {
	case TwoCorner:
		if s.TopLeft.Lat <= s.BottomRight.Lat {
			return fmt.Errorf("%w: %s: top-left latitude %.6f must be north of %.6f",
				ErrInvalidRegion, r.Name, s.TopLeft.Lat, s.BottomRight.Lat)
		}
		if s.TopLeft.Lng >= s.BottomRight.Lng {
			return fmt.Errorf("%w: %s: top-left longitude %.6f must be west of %.6f",
				ErrInvalidRegion, r.Name, s.TopLeft.Lng, s.BottomRight.Lng)
		}
	case Polygon:
		distinct := make(map[LatLng]struct{}, len(s.Vertices))
		for _, v := range s.Vertices {
			distinct[v] = struct{}{}
		}
		if len(distinct) < 3 {
			return fmt.Errorf("%w: %s: polygon needs 3 distinct vertices, got %d",
				ErrInvalidRegion, r.Name, len(distinct))
		}
	default:
		return fmt.Errorf("%w: %s: no shape", ErrInvalidRegion, r.Name)
	}
	return nil
}
