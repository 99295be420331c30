package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains reports whether point lies inside region. Points exactly on an
// edge or a vertex count as inside.
func Contains(r Region, point LatLng) bool {
	ring := Ring(r)
	if len(ring) < 4 {
		return false
	}
	return planar.PolygonContains(orb.Polygon{ring}, point.Point())
}

// Centroid returns the area centroid of the region outline.
func Centroid(r Region) LatLng {
	ring := Ring(r)
	if len(ring) == 0 {
		return LatLng{}
	}
	c, _ := planar.CentroidArea(orb.Polygon{ring})
	return FromPoint(c)
}

// Bound returns the bounding box of the region.
func Bound(r Region) orb.Bound {
	return Ring(r).Bound()
}

// BoundOf returns the box enclosing every region, or an empty bound at the
// origin when regions is empty.
func BoundOf(regions []Region) orb.Bound {
	if len(regions) == 0 {
		return orb.Bound{}
	}
	b := Bound(regions[0])
	for _, r := range regions[1:] {
		b = b.Union(Bound(r))
	}
	return b
}
