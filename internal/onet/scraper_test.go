package onet

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/riasec"
)

func TestParseInterestRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []string
		ok    bool
		want  InterestRow
	}{
		{
			name:  "full row",
			cells: []string{"15-1252.00", "Software Developers", "4", "Investigative, Conventional, Realistic"},
			ok:    true,
			want: InterestRow{
				Code:      "15-1252.00",
				Title:     "Software Developers",
				Zone:      "4",
				Interests: []string{"Investigative", "Conventional", "Realistic"},
			},
		},
		{
			name:  "single interest",
			cells: []string{"47-2031.00", "Carpenters", "2", "Realistic"},
			ok:    true,
			want: InterestRow{
				Code:      "47-2031.00",
				Title:     "Carpenters",
				Zone:      "2",
				Interests: []string{"Realistic"},
			},
		},
		{
			name:  "footer noise is skipped",
			cells: []string{"Show fewer occupations"},
			ok:    false,
		},
		{
			name:  "unknown interest names dropped",
			cells: []string{"00-0000.00", "Mystery", "1", "Adventurous"},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parseInterestRow(tt.cells)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if got.Code != tt.want.Code || got.Title != tt.want.Title || got.Zone != tt.want.Zone {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if len(got.Interests) != len(tt.want.Interests) {
				t.Fatalf("expected interests %v, got %v", tt.want.Interests, got.Interests)
			}
			for i := range got.Interests {
				if got.Interests[i] != tt.want.Interests[i] {
					t.Fatalf("interest %d: expected %s, got %s", i, tt.want.Interests[i], got.Interests[i])
				}
			}
		})
	}
}

func TestBuildCatalogPivot(t *testing.T) {
	t.Parallel()

	interests := []InterestRow{
		{Code: "15-1252.00", Title: "Software Developers", Interests: []string{"Investigative", "Conventional", "Realistic"}},
		{Code: "15-1252.00", Title: "Software Developers", Interests: []string{"Investigative"}}, // duplicate code
		{Code: "27-1024.00", Title: "Graphic Designers", Interests: []string{"Artistic", "Enterprising"}},
	}
	families := []FamilyRow{
		{Code: "15-1252.00", Title: "Software Developers", Family: "Computer and Mathematical"},
		{Code: "27-1024.00", Title: "Graphic Designers", Family: "Arts and Design"},
	}

	c := BuildCatalog(interests, families)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries after dedupe, got %d", c.Len())
	}

	dev := c.Entries[0]
	if dev.Family != "Computer and Mathematical" {
		t.Fatalf("expected family join, got %q", dev.Family)
	}
	expectDev := riasec.Profile{1, 3, 0, 0, 0, 2}
	if dev.Profile != expectDev {
		t.Fatalf("expected pivoted profile %v, got %v", expectDev, dev.Profile)
	}

	designer := c.Entries[1]
	expectDesigner := riasec.Profile{0, 0, 3, 0, 2, 0}
	if designer.Profile != expectDesigner {
		t.Fatalf("expected pivoted profile %v, got %v", expectDesigner, designer.Profile)
	}
}

func TestWriteCatalogRoundTrip(t *testing.T) {
	t.Parallel()

	c := BuildCatalog(
		[]InterestRow{{Code: "x", Title: "Carpenters", Interests: []string{"Realistic", "Conventional"}}},
		[]FamilyRow{{Code: "x", Title: "Carpenters", Family: "Construction"}},
	)

	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := WriteCatalog(path, c); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	loaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load written catalog: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", loaded.Len())
	}
	entry := loaded.Entries[0]
	if entry.Title != "Carpenters" || entry.Family != "Construction" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	expect := riasec.Profile{3, 0, 0, 0, 0, 2}
	if entry.Profile != expect {
		t.Fatalf("expected profile %v, got %v", expect, entry.Profile)
	}
}

func TestPaginateStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	pageRows := map[int]string{
		1: "<tr><td>1.00</td><td>Job One</td><td>2</td><td>Realistic</td></tr>",
		2: "<tr><td>2.00</td><td>Job Two</td><td>3</td><td>Social</td></tr>",
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := 1
		if p := r.URL.Query().Get("p"); p != "" {
			fmt.Sscanf(p, "%d", &page)
		}
		fmt.Fprintf(w, "<html><body><table><tr><th>Code</th></tr>%s</table></body></html>", pageRows[page])
	}))
	defer server.Close()

	s := NewScraper(nil)
	s.BaseURL = server.URL
	s.Delay = 0

	var rows []InterestRow
	pages, err := s.paginate(server.URL+"/listing", "?p=%d", maxInterestPages, func(cells []string) {
		if row, ok := parseInterestRow(cells); ok {
			rows = append(rows, row)
		}
	})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}

	if pages != 2 {
		t.Fatalf("expected 2 data pages, got %d", pages)
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests (two pages plus the empty one), got %d", requests)
	}
	if len(rows) != 2 || rows[0].Title != "Job One" || rows[1].Title != "Job Two" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestPaginateAbortsOnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "<table><tr><td>1.00</td><td>Job</td><td>2</td><td>Realistic</td></tr></table>")
	}))
	defer server.Close()

	s := NewScraper(nil)
	s.BaseURL = server.URL
	s.Delay = 0

	_, err := s.paginate(server.URL+"/listing", "?p=%d", maxInterestPages, func([]string) {})
	if err == nil {
		t.Fatalf("expected error from failing page")
	}
}
