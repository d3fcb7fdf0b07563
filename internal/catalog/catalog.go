// Package catalog owns the fixed table of job roles the ranker scores against.
// The table is loaded once per process and treated as read-only afterwards.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/fortemind/career-compass/internal/riasec"
)

// Column names of the persisted catalog file. The six score columns follow the
// fixed dimension order.
const (
	TitleColumn  = "Title"
	FamilyColumn = "Job Family"
)

// Entry is a single job role with its precomputed interest profile.
type Entry struct {
	Title   string
	Family  string
	Profile riasec.Profile
}

// Catalog is the ordered, immutable set of entries. Order matters: ranking
// ties are broken by catalog position.
type Catalog struct {
	Entries []Entry
}

// row mirrors one CSV record keyed by header name. Values arrive as strings
// and are coerced by the weakly typed decoder.
type row struct {
	Title         string  `mapstructure:"Title"`
	Family        string  `mapstructure:"Job Family"`
	Realistic     float64 `mapstructure:"Realistic"`
	Investigative float64 `mapstructure:"Investigative"`
	Artistic      float64 `mapstructure:"Artistic"`
	Social        float64 `mapstructure:"Social"`
	Enterprising  float64 `mapstructure:"Enterprising"`
	Conventional  float64 `mapstructure:"Conventional"`
}

// Load reads a catalog CSV produced by the scrape command. The file must have
// a header row naming at least Title, Job Family and the six dimension columns.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog %s has no data rows", path)
	}

	header := records[0]
	entries := make([]Entry, 0, len(records)-1)
	for i, record := range records[1:] {
		entry, err := decodeRow(header, record)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}

	return &Catalog{Entries: entries}, nil
}

func decodeRow(header, record []string) (Entry, error) {
	if len(record) != len(header) {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}

	fields := make(map[string]any, len(header))
	for i, name := range header {
		fields[name] = record[i]
	}

	var r row
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &r,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return Entry{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return Entry{}, fmt.Errorf("decode: %w", err)
	}

	if r.Title == "" {
		return Entry{}, fmt.Errorf("missing %s column value", TitleColumn)
	}

	return Entry{
		Title:  r.Title,
		Family: r.Family,
		Profile: riasec.Profile{
			r.Realistic,
			r.Investigative,
			r.Artistic,
			r.Social,
			r.Enterprising,
			r.Conventional,
		},
	}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Profiles returns every entry's profile vector in catalog order, ready for a
// batched projector call.
func (c *Catalog) Profiles() [][]float64 {
	out := make([][]float64, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Profile.Values()
	}
	return out
}

// Families returns the distinct job families in first-seen order.
func (c *Catalog) Families() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range c.Entries {
		if _, ok := seen[e.Family]; ok {
			continue
		}
		seen[e.Family] = struct{}{}
		out = append(out, e.Family)
	}
	return out
}
