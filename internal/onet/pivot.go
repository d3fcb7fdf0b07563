package onet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/riasec"
)

// Interest-order weights: an occupation's first listed interest area counts
// strongest, the third weakest.
var interestWeights = [3]float64{3, 2, 1}

// BuildCatalog pivots the scraped rows into catalog entries: one row per
// occupation with a six-column profile derived from its ranked interest areas
// and the job family joined by occupation code. Duplicate codes keep the first
// occurrence; entries preserve scrape order.
func BuildCatalog(interests []InterestRow, families []FamilyRow) *catalog.Catalog {
	familyByCode := make(map[string]string, len(families))
	for _, f := range families {
		if _, ok := familyByCode[f.Code]; !ok {
			familyByCode[f.Code] = f.Family
		}
	}

	seen := make(map[string]struct{}, len(interests))
	entries := make([]catalog.Entry, 0, len(interests))
	for _, row := range interests {
		if _, dup := seen[row.Code]; dup {
			continue
		}
		seen[row.Code] = struct{}{}

		var profile riasec.Profile
		for i, name := range row.Interests {
			if i >= len(interestWeights) {
				break
			}
			d, err := riasec.ParseDimension(name)
			if err != nil {
				continue
			}
			profile[d] = interestWeights[i]
		}

		entries = append(entries, catalog.Entry{
			Title:   row.Title,
			Family:  familyByCode[row.Code],
			Profile: profile,
		})
	}

	return &catalog.Catalog{Entries: entries}
}

// WriteCatalog persists the catalog in the schema the engine loads at session
// start.
func WriteCatalog(path string, c *catalog.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{catalog.TitleColumn, catalog.FamilyColumn}
	for _, d := range riasec.Dimensions() {
		header = append(header, d.Name())
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write catalog header: %w", err)
	}

	for _, entry := range c.Entries {
		record := []string{entry.Title, entry.Family}
		for _, d := range riasec.Dimensions() {
			record = append(record, fmt.Sprintf("%g", entry.Profile[d]))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write catalog row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
