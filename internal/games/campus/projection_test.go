package campus

import (
	"testing"

	"github.com/vovakirdan/campus-guesser/internal/catalog"
	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
)

func testProjection() Projection {
	return NewProjection(core.NewRect(1, 3, 64, 25), geo.BoundOf(catalog.Default().Regions))
}

func TestProjectionRoundTrip(t *testing.T) {
	p := testProjection()
	area := p.Area()
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c := core.Point{X: x, Y: y}
			if got := p.Cell(p.LatLng(c)); got != c {
				t.Fatalf("Cell(LatLng(%+v)) = %+v", c, got)
			}
		}
	}
}

func TestProjectionOrientation(t *testing.T) {
	p := testProjection()
	area := p.Area()

	nw := p.LatLng(core.Point{X: area.X, Y: area.Y})
	se := p.LatLng(core.Point{X: area.Right() - 1, Y: area.Bottom() - 1})
	if nw.Lat <= se.Lat {
		t.Errorf("top row lat %f not north of bottom row lat %f", nw.Lat, se.Lat)
	}
	if nw.Lng >= se.Lng {
		t.Errorf("left column lng %f not west of right column lng %f", nw.Lng, se.Lng)
	}

	far := geo.LatLng{Lat: 40, Lng: -100}
	if c := p.Cell(far); !area.Contains(c.X, c.Y) {
		t.Errorf("far point mapped outside the area: %+v", c)
	}
}

func TestProjectionCellMeters(t *testing.T) {
	w, h := testProjection().CellMeters()
	if w <= 0 || h <= 0 || w > 50 || h > 50 {
		t.Errorf("cell size %.1fx%.1f m out of range", w, h)
	}
}

func TestBuildingGridCoversCatalog(t *testing.T) {
	p := testProjection()
	regions := catalog.Default().Regions
	grid := newBuildingGrid(regions, p)

	seen := make(map[int]bool)
	area := p.Area()
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if i := grid.At(core.Point{X: x, Y: y}); i >= 0 {
				seen[i] = true
			}
		}
	}
	for i, r := range regions {
		if !seen[i] {
			t.Errorf("%s has no map cell", r.Name)
		}
	}
	if grid.At(core.Point{X: -5, Y: -5}) != -1 {
		t.Error("cell outside the map reported a building")
	}
}

func TestMapSurface(t *testing.T) {
	p := testProjection()
	s := NewMapSurface(p)
	library, _ := catalog.Default().Region("University Library")

	h1 := s.DrawRegion(geo.PolygonOf(library), geo.CorrectStyle)
	h2 := s.DrawRegion(geo.PolygonOf(library), geo.WrongStyle)
	if h1 == h2 {
		t.Fatal("handles reused")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	scr := core.NewScreen(70, 30)
	s.Paint(scr)
	c := p.Cell(geo.Centroid(library))
	if got := scr.GetCell(c.X, c.Y); got.Rune != OverlayChar || got.Color != core.ColorBrightRed {
		t.Errorf("centroid cell = %+v, want the later red overlay on top", got)
	}

	s.RemoveRegion(h2)
	s.RemoveRegion(h2)
	if s.Len() != 1 {
		t.Fatalf("Len after remove = %d, want 1", s.Len())
	}
	scr.Clear()
	s.Paint(scr)
	if got := scr.GetCell(c.X, c.Y); got.Color != core.ColorBrightGreen {
		t.Errorf("centroid cell = %+v, want green", got)
	}

	s.RemoveRegion(h1)
	scr.Clear()
	s.Paint(scr)
	if got := scr.GetCell(c.X, c.Y); got.Rune != ' ' {
		t.Errorf("overlay left behind: %+v", got)
	}
}

func TestStyleColor(t *testing.T) {
	tests := []struct {
		style geo.Style
		want  core.Color
	}{
		{geo.CorrectStyle, core.ColorBrightGreen},
		{geo.WrongStyle, core.ColorBrightRed},
		{geo.Style{Fill: "#00ff00"}, core.ColorBrightGreen},
		{geo.Style{Fill: "#123456"}, core.ColorYellow},
	}
	for _, tt := range tests {
		if got := styleColor(tt.style); got != tt.want {
			t.Errorf("styleColor(%q) = %v, want %v", tt.style.Fill, got, tt.want)
		}
	}
}
