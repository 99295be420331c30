package geo

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// minSpan keeps degenerate bounding boxes acceptable to the R-tree.
const minSpan = 1e-9

// indexed pairs a region with its bounding box for the R-tree.
type indexed struct {
	region Region
	rect   rtreego.Rect
	order  int
}

// Bounds implements rtreego.Spatial.
func (e *indexed) Bounds() rtreego.Rect {
	return e.rect
}

// Index answers "which region is under this point" for a whole catalog.
type Index struct {
	tree  *rtreego.Rtree
	count int
}

// NewIndex builds a 2D R-tree over the bounding boxes of regions.
func NewIndex(regions []Region) *Index {
	idx := &Index{tree: rtreego.NewTree(2, 2, 8)}
	for i, r := range regions {
		b := Bound(r)
		lengths := []float64{
			math.Max(b.Max[0]-b.Min[0], minSpan),
			math.Max(b.Max[1]-b.Min[1], minSpan),
		}
		rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
		if err != nil {
			continue
		}
		idx.tree.Insert(&indexed{region: r, rect: rect, order: i})
		idx.count++
	}
	return idx
}

// Len returns the number of indexed regions.
func (idx *Index) Len() int {
	return idx.count
}

// Hit returns the region containing point. When regions overlap the one
// listed first wins. ok is false when the point is outside every region.
func (idx *Index) Hit(point LatLng) (Region, bool) {
	query := rtreego.Point{point.Lng, point.Lat}.ToRect(minSpan)

	var best *indexed
	for _, s := range idx.tree.SearchIntersect(query) {
		e := s.(*indexed)
		if !Contains(e.region, point) {
			continue
		}
		if best == nil || e.order < best.order {
			best = e
		}
	}
	if best == nil {
		return Region{}, false
	}
	return best.region, true
}
