package campus

import (
	"strings"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
)

// Map glyphs
const (
	BuildingChar  = '░'
	OverlayChar   = '▓'
	CrosshairChar = '+'
)

// overlay is a region painted over the map.
type overlay struct {
	cells []core.Point
	color core.Color
}

// MapSurface is the terminal map's geo.Surface. Overlays are rasterized
// once when drawn and painted over the building layer on every frame.
type MapSurface struct {
	proj     Projection
	next     geo.Handle
	overlays map[geo.Handle]overlay
	order    []geo.Handle
}

var _ geo.Surface = (*MapSurface)(nil)

// NewMapSurface creates an empty surface over proj.
func NewMapSurface(proj Projection) *MapSurface {
	return &MapSurface{
		proj:     proj,
		overlays: make(map[geo.Handle]overlay),
	}
}

// DrawRegion rasterizes polygon and keeps it until removed.
func (s *MapSurface) DrawRegion(polygon []geo.LatLng, style geo.Style) geo.Handle {
	s.next++
	h := s.next
	s.overlays[h] = overlay{
		cells: rasterize(geo.NewPolygon("", polygon...), s.proj),
		color: styleColor(style),
	}
	s.order = append(s.order, h)
	return h
}

// RemoveRegion drops an overlay. Unknown handles are ignored.
func (s *MapSurface) RemoveRegion(h geo.Handle) {
	if _, ok := s.overlays[h]; !ok {
		return
	}
	delete(s.overlays, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of overlays shown.
func (s *MapSurface) Len() int {
	return len(s.overlays)
}

// Paint draws the overlays in the order they were added.
func (s *MapSurface) Paint(dst *core.Screen) {
	for _, h := range s.order {
		o := s.overlays[h]
		for _, c := range o.cells {
			dst.SetColor(c.X, c.Y, OverlayChar, o.color)
		}
	}
}

// styleColor picks the closest terminal color for a fill.
func styleColor(style geo.Style) core.Color {
	switch strings.ToUpper(style.Fill) {
	case "#00FF00":
		return core.ColorBrightGreen
	case "#FF0000":
		return core.ColorBrightRed
	default:
		return core.ColorYellow
	}
}

// rasterize returns the map cells whose centers fall inside r. A region
// smaller than a cell still gets the cell holding its centroid.
func rasterize(r geo.Region, proj Projection) []core.Point {
	b := geo.Bound(r)
	from := proj.Cell(geo.LatLng{Lat: b.Max[1], Lng: b.Min[0]})
	to := proj.Cell(geo.LatLng{Lat: b.Min[1], Lng: b.Max[0]})

	var cells []core.Point
	for y := from.Y; y <= to.Y; y++ {
		for x := from.X; x <= to.X; x++ {
			c := core.Point{X: x, Y: y}
			if geo.Contains(r, proj.LatLng(c)) {
				cells = append(cells, c)
			}
		}
	}
	if len(cells) == 0 {
		cells = append(cells, proj.Cell(geo.Centroid(r)))
	}
	return cells
}

// buildingGrid records which catalog region covers each map cell, -1 for
// open ground. Earlier regions win where footprints overlap.
type buildingGrid struct {
	area  core.Rect
	cells [][]int
}

func newBuildingGrid(regions []geo.Region, proj Projection) buildingGrid {
	area := proj.Area()
	g := buildingGrid{area: area, cells: make([][]int, core.Max(area.H, 0))}
	for y := range g.cells {
		g.cells[y] = make([]int, core.Max(area.W, 0))
		for x := range g.cells[y] {
			g.cells[y][x] = -1
		}
	}
	for i := len(regions) - 1; i >= 0; i-- {
		for _, c := range rasterize(regions[i], proj) {
			g.set(c, i)
		}
	}
	return g
}

func (g buildingGrid) set(c core.Point, v int) {
	if g.area.Contains(c.X, c.Y) {
		g.cells[c.Y-g.area.Y][c.X-g.area.X] = v
	}
}

// At returns the region index at c, or -1.
func (g buildingGrid) At(c core.Point) int {
	if !g.area.Contains(c.X, c.Y) {
		return -1
	}
	return g.cells[c.Y-g.area.Y][c.X-g.area.X]
}
