package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for distances.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two coordinates.
func DistanceMeters(a, b LatLng) float64 {
	pa := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lng))
	pb := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lng))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(pa, pb).Angle())
	return angle.Radians() * EarthRadiusMeters
}

// MissMeters returns how far point is from region: zero when the region
// contains it, otherwise the distance to the region's centroid.
func MissMeters(r Region, point LatLng) float64 {
	if Contains(r, point) {
		return 0
	}
	return DistanceMeters(point, Centroid(r))
}
