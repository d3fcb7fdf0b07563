package filtering

import (
	"testing"

	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/riasec"
)

func fixtureCatalog() *catalog.Catalog {
	return &catalog.Catalog{Entries: []catalog.Entry{
		{Title: "Software Developer", Family: "Computer and Mathematical", Profile: riasec.Profile{1, 3, 0, 0, 1, 2}},
		{Title: "Graphic Designer", Family: "Arts and Design", Profile: riasec.Profile{0, 0, 3, 1, 2, 0}},
		{Title: "software developer", Family: "Computer and Mathematical", Profile: riasec.Profile{1, 3, 0, 0, 1, 2}},
		{Title: "Carpenter", Family: "Construction", Profile: riasec.Profile{3, 0, 1, 0, 0, 2}},
	}}
}

func TestExcludedFamilies(t *testing.T) {
	t.Parallel()

	filter := NewExcludedFamilies([]string{" construction "})
	out, step, err := filter.Apply(fixtureCatalog())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if step.Initial != 4 || step.Dropped != 1 || step.Left != 3 {
		t.Fatalf("unexpected step counts: %+v", step)
	}
	for _, entry := range out.Entries {
		if entry.Family == "Construction" {
			t.Fatalf("construction entry survived the filter")
		}
	}
}

func TestExcludedFamiliesDisabledWhenEmpty(t *testing.T) {
	t.Parallel()

	if NewExcludedFamilies(nil).IsEnabled() {
		t.Fatalf("filter without configured families must be disabled")
	}
}

func TestDedupeTitles(t *testing.T) {
	t.Parallel()

	out, step, err := NewDedupeTitles().Apply(fixtureCatalog())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if step.Dropped != 1 || out.Len() != 3 {
		t.Fatalf("expected one duplicate dropped, got step %+v", step)
	}
	// The first occurrence wins and input order survives.
	if out.Entries[0].Title != "Software Developer" || out.Entries[2].Title != "Carpenter" {
		t.Fatalf("unexpected order after dedupe: %+v", out.Entries)
	}
}

func TestRunPipeline(t *testing.T) {
	t.Parallel()

	pipeline := New([]Filter{
		NewExcludedFamilies([]string{"Arts and Design"}),
		NewDedupeTitles(),
	}, nil)

	out, err := pipeline.Run(fixtureCatalog())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("expected 2 entries after pipeline, got %d", out.Len())
	}
	if out.Entries[0].Title != "Software Developer" || out.Entries[1].Title != "Carpenter" {
		t.Fatalf("unexpected pipeline result: %+v", out.Entries)
	}
}
