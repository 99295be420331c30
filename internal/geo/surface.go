package geo

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Style describes how a region overlay is painted.
type Style struct {
	Stroke        string  `json:"stroke"`
	StrokeOpacity float64 `json:"stroke-opacity"`
	StrokeWeight  int     `json:"stroke-width"`
	Fill          string  `json:"fill"`
	FillOpacity   float64 `json:"fill-opacity"`
}

// Overlay styles for a correct and a wrong answer.
var (
	CorrectStyle = Style{Stroke: "#00FF00", StrokeOpacity: 0.8, StrokeWeight: 2, Fill: "#00FF00", FillOpacity: 0.35}
	WrongStyle   = Style{Stroke: "#FF0000", StrokeOpacity: 0.8, StrokeWeight: 2, Fill: "#FF0000", FillOpacity: 0.35}
)

// StyleFor picks the overlay style for a guess outcome.
func StyleFor(correct bool) Style {
	if correct {
		return CorrectStyle
	}
	return WrongStyle
}

// Handle identifies an overlay drawn on a Surface.
type Handle int

// Surface is a map that can show and hide region overlays.
type Surface interface {
	DrawRegion(polygon []LatLng, style Style) Handle
	RemoveRegion(h Handle)
}

// FeatureLayer is a Surface that keeps its overlays as GeoJSON features.
// It is safe for concurrent use.
type FeatureLayer struct {
	mu       sync.Mutex
	next     Handle
	features map[Handle]*geojson.Feature
}

// NewFeatureLayer creates an empty layer.
func NewFeatureLayer() *FeatureLayer {
	return &FeatureLayer{features: make(map[Handle]*geojson.Feature)}
}

// DrawRegion adds a styled polygon feature and returns its handle.
func (l *FeatureLayer) DrawRegion(polygon []LatLng, style Style) Handle {
	ring := make(orb.Ring, 0, len(polygon)+1)
	for _, v := range polygon {
		ring = append(ring, v.Point())
	}
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}

	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["stroke"] = style.Stroke
	f.Properties["stroke-opacity"] = style.StrokeOpacity
	f.Properties["stroke-width"] = style.StrokeWeight
	f.Properties["fill"] = style.Fill
	f.Properties["fill-opacity"] = style.FillOpacity

	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	f.ID = int(l.next)
	l.features[l.next] = f
	return l.next
}

// RemoveRegion deletes an overlay. Unknown handles are ignored.
func (l *FeatureLayer) RemoveRegion(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.features, h)
}

// Len returns the number of overlays currently shown.
func (l *FeatureLayer) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.features)
}

// Collection returns the overlays in drawing order.
func (l *FeatureLayer) Collection() *geojson.FeatureCollection {
	l.mu.Lock()
	defer l.mu.Unlock()

	fc := geojson.NewFeatureCollection()
	for h := Handle(1); h <= l.next; h++ {
		if f, ok := l.features[h]; ok {
			fc.Append(f)
		}
	}
	return fc
}

// MarshalJSON encodes the overlays as a GeoJSON FeatureCollection.
func (l *FeatureLayer) MarshalJSON() ([]byte, error) {
	return l.Collection().MarshalJSON()
}

// CatalogCollection renders every region as a GeoJSON feature with its name
// and centroid, in the given style.
func CatalogCollection(regions []Region, style Style) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range regions {
		f := geojson.NewFeature(orb.Polygon{Ring(r)})
		c := Centroid(r)
		f.Properties["name"] = r.Name
		f.Properties["centroid"] = []float64{c.Lng, c.Lat}
		f.Properties["stroke"] = style.Stroke
		f.Properties["fill"] = style.Fill
		f.Properties["fill-opacity"] = style.FillOpacity
		fc.Append(f)
	}
	return fc
}
