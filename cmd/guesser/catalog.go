package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-guesser/internal/catalog"
	"github.com/vovakirdan/campus-guesser/internal/geo"
)

var flagCatalogGeoJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the buildings of a catalog",
	Long: `List every location of the active catalog with its centroid, or
export the catalog as a GeoJSON FeatureCollection.

Examples:
  guesser catalog
  guesser catalog --catalog ./my-campus.yaml
  guesser catalog --geojson > csun.geojson`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to custom location catalog YAML")
	catalogCmd.Flags().BoolVar(&flagCatalogGeoJSON, "geojson", false, "Print the catalog as GeoJSON")
}

func runCatalog(_ *cobra.Command, _ []string) error {
	cat, src, err := catalog.Load(flagCatalog)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", "name", cat.Name, "source", src, "locations", cat.Len())

	if flagCatalogGeoJSON {
		fc := geo.CatalogCollection(cat.Regions, geo.Style{Stroke: "#3388FF", Fill: "#3388FF", FillOpacity: 0.2})
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fc)
	}

	fmt.Printf("%s (%d locations, from %s)\n", cat.Name, cat.Len(), src)
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, r := range cat.Regions {
		if n := len([]rune(r.Name)); n > maxNameLen {
			maxNameLen = n
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Centroid")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "--------")
	for _, r := range cat.Regions {
		name := r.Name
		if name == cat.Mandatory {
			name += " *"
		}
		fmt.Printf("  %-*s  %s\n", maxNameLen, name, geo.Centroid(r))
	}

	fmt.Println()
	fmt.Println("* asked in every session")
	return nil
}
