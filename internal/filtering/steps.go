package filtering

import (
	"strings"

	"github.com/fortemind/career-compass/internal/catalog"
)

type familiesFilter struct {
	excluded []string
}

// NewExcludedFamilies creates a filter that removes entries whose job family
// is listed in the configuration.
func NewExcludedFamilies(families []string) Filter {
	return &familiesFilter{excluded: families}
}

func (f *familiesFilter) Name() string { return "excluded_families" }

func (f *familiesFilter) IsEnabled() bool { return len(f.excluded) > 0 }

func (f *familiesFilter) Apply(c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	initial := c.Len()

	blocked := make(map[string]struct{}, len(f.excluded))
	for _, family := range f.excluded {
		blocked[strings.ToLower(strings.TrimSpace(family))] = struct{}{}
	}

	kept := make([]catalog.Entry, 0, c.Len())
	for _, entry := range c.Entries {
		if _, drop := blocked[strings.ToLower(entry.Family)]; drop {
			continue
		}
		kept = append(kept, entry)
	}

	out := &catalog.Catalog{Entries: kept}
	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}

type dedupeFilter struct{}

// NewDedupeTitles creates a filter that keeps only the first entry for each
// job title. Scraped listings repeat titles across interest pages.
func NewDedupeTitles() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe_titles" }

func (f *dedupeFilter) IsEnabled() bool { return true }

func (f *dedupeFilter) Apply(c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	initial := c.Len()

	seen := make(map[string]struct{}, c.Len())
	kept := make([]catalog.Entry, 0, c.Len())
	for _, entry := range c.Entries {
		key := strings.ToLower(strings.TrimSpace(entry.Title))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, entry)
	}

	out := &catalog.Catalog{Entries: kept}
	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}
