// Package catalog loads the set of named regions a game is played on.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/campus-guesser/internal/config"
	"github.com/vovakirdan/campus-guesser/internal/geo"
)

//go:embed defaults/csun.yaml
var defaultCSUNYAML []byte

// DefaultFile is the catalog file name looked up when none is given.
const DefaultFile = "csun.yaml"

// ErrInvalidCatalog is wrapped by every Parse failure.
var ErrInvalidCatalog = errors.New("catalog: invalid")

// Catalog is an immutable, ordered list of regions.
type Catalog struct {
	Name      string
	Mandatory string
	Center    geo.LatLng
	Regions   []geo.Region
}

type document struct {
	Name      string     `yaml:"name"`
	Mandatory string     `yaml:"mandatory"`
	Center    geo.LatLng `yaml:"center"`
	Locations []location `yaml:"locations"`
}

type location struct {
	Name        string       `yaml:"name"`
	TopLeft     *geo.LatLng  `yaml:"top_left"`
	BottomRight *geo.LatLng  `yaml:"bottom_right"`
	Polygon     []geo.LatLng `yaml:"polygon"`
}

func (l location) region() (geo.Region, error) {
	rect := l.TopLeft != nil || l.BottomRight != nil
	switch {
	case rect && len(l.Polygon) > 0:
		return geo.Region{}, fmt.Errorf("%w: %s: give corners or polygon, not both", ErrInvalidCatalog, l.Name)
	case rect:
		if l.TopLeft == nil || l.BottomRight == nil {
			return geo.Region{}, fmt.Errorf("%w: %s: both top_left and bottom_right are required", ErrInvalidCatalog, l.Name)
		}
		return geo.NewRect(l.Name, *l.TopLeft, *l.BottomRight), nil
	case len(l.Polygon) > 0:
		return geo.NewPolygon(l.Name, l.Polygon...), nil
	default:
		return geo.Region{}, fmt.Errorf("%w: %s: no shape", ErrInvalidCatalog, l.Name)
	}
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(doc.Locations) == 0 {
		return nil, fmt.Errorf("%w: no locations", ErrInvalidCatalog)
	}

	c := &Catalog{
		Name:      doc.Name,
		Mandatory: doc.Mandatory,
		Center:    doc.Center,
		Regions:   make([]geo.Region, 0, len(doc.Locations)),
	}

	seen := make(map[string]bool, len(doc.Locations))
	for _, loc := range doc.Locations {
		r, err := loc.region()
		if err != nil {
			return nil, err
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidCatalog, r.Name)
		}
		seen[r.Name] = true
		c.Regions = append(c.Regions, r)
	}

	if c.Mandatory == "" {
		c.Mandatory = c.Regions[0].Name
	}
	if !seen[c.Mandatory] {
		return nil, fmt.Errorf("%w: mandatory location %q not listed", ErrInvalidCatalog, c.Mandatory)
	}
	if c.Center == (geo.LatLng{}) {
		c.Center = geo.FromPoint(geo.BoundOf(c.Regions).Center())
	}
	return c, nil
}

// Default returns the embedded CSUN catalog.
func Default() *Catalog {
	c, err := Parse(defaultCSUNYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load finds and parses a catalog.
// Search order: customPath -> ~/.guesser/catalogs/csun.yaml ->
// ./catalogs/csun.yaml -> embedded default.
func Load(customPath string) (*Catalog, config.Source, error) {
	data, src, found, err := config.ReadLayered(customPath, "catalogs", DefaultFile)
	if err != nil {
		return nil, src, err
	}
	if !found {
		return Default(), config.SourceEmbedded, nil
	}

	c, err := Parse(data)
	if err != nil {
		return nil, src, err
	}
	return c, src, nil
}

// Region returns the region with the given name.
func (c *Catalog) Region(name string) (geo.Region, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return geo.Region{}, false
}

// Names returns the region names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Regions))
	for i, r := range c.Regions {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	return len(c.Regions)
}
