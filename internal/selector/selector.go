// Package selector draws the ordered list of regions played in one session.
package selector

import (
	"fmt"

	"github.com/vovakirdan/campus-guesser/internal/geo"
)

// DefaultRoundCount is the session length used when none is configured.
const DefaultRoundCount = 5

// Rand is the random source consumed by Build. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// ConfigurationError reports a catalog/setting combination that cannot
// produce a session.
type ConfigurationError struct {
	Mandatory   string
	RoundCount  int
	CatalogSize int
	Reason      string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("selector: cannot build %d-round session from %d regions (mandatory %q): %s",
		e.RoundCount, e.CatalogSize, e.Mandatory, e.Reason)
}

// Build returns roundCount distinct regions from catalog in random order.
// The region named mandatory is always included; the others are drawn
// uniformly without replacement. Build only reads catalog.
func Build(catalog []geo.Region, mandatory string, roundCount int, rng Rand) ([]geo.Region, error) {
	fail := func(reason string) error {
		return &ConfigurationError{
			Mandatory:   mandatory,
			RoundCount:  roundCount,
			CatalogSize: len(catalog),
			Reason:      reason,
		}
	}

	if roundCount < 1 {
		return nil, fail("round count must be at least 1")
	}
	if len(catalog) < roundCount {
		return nil, fail("not enough regions")
	}

	mandatoryAt := -1
	for i, r := range catalog {
		if r.Name == mandatory {
			mandatoryAt = i
			break
		}
	}
	if mandatoryAt < 0 {
		return nil, fail("mandatory region not in catalog")
	}

	// Candidates are everything but the mandatory region
	pool := make([]geo.Region, 0, len(catalog)-1)
	pool = append(pool, catalog[:mandatoryAt]...)
	pool = append(pool, catalog[mandatoryAt+1:]...)

	// Partial Fisher-Yates: the first roundCount-1 slots become a uniform
	// sample without replacement
	picks := roundCount - 1
	for i := 0; i < picks; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	session := make([]geo.Region, 0, roundCount)
	session = append(session, catalog[mandatoryAt])
	session = append(session, pool[:picks]...)

	Shuffle(session, rng)
	return session, nil
}

// Shuffle permutes regions in place with a Fisher-Yates shuffle.
func Shuffle(regions []geo.Region, rng Rand) {
	for i := len(regions) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		regions[i], regions[j] = regions[j], regions[i]
	}
}
