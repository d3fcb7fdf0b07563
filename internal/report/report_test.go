package report

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/recommend"
	"github.com/fortemind/career-compass/internal/riasec"
)

func sampleSummary() *Summary {
	return New("Tester", riasec.Profile{2, 5, 1, 3, 2, 4}, []recommend.Recommendation{
		{
			Entry:     catalog.Entry{Title: "Statisticians", Family: "Computer and Mathematical"},
			Score:     0.93,
			Rank:      1,
			Rationale: "Your highest scores are on the Investigative and Conventional dimensions",
		},
		{
			Entry:     catalog.Entry{Title: "Accountants", Family: "Business and Financial"},
			Score:     0.88,
			Rank:      2,
			Rationale: "Your highest scores are on the Investigative and Conventional dimensions",
		},
	}, "Counselor text.")
}

func TestNewAssignsSessionIdentity(t *testing.T) {
	t.Parallel()

	first := sampleSummary()
	second := sampleSummary()

	if first.SessionID == "" || second.SessionID == "" {
		t.Fatalf("expected non-empty session ids")
	}
	if first.SessionID == second.SessionID {
		t.Fatalf("session ids must be unique per session")
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("expected a creation timestamp")
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	s := sampleSummary()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := s.WriteJSON(path); err != nil {
		t.Fatalf("write json: %v", err)
	}

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded jsonSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid json: %v", err)
	}

	if decoded.DominantType != "Investigative" {
		t.Fatalf("expected Investigative dominant type, got %q", decoded.DominantType)
	}
	if len(decoded.Scores) != riasec.NumDimensions {
		t.Fatalf("expected %d scores, got %d", riasec.NumDimensions, len(decoded.Scores))
	}
	if decoded.Scores[0].Code != "R" || decoded.Scores[5].Code != "C" {
		t.Fatalf("scores must follow the fixed dimension order: %+v", decoded.Scores)
	}
	if len(decoded.Recommendations) != 2 || decoded.Recommendations[0].Rank != 1 {
		t.Fatalf("unexpected recommendations: %+v", decoded.Recommendations)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := sampleSummary().Markdown()

	for _, fragment := range []string{
		"# RIASEC Career Report",
		"Respondent: Tester",
		"Dominant type: Investigative",
		"1. Statisticians (Computer and Mathematical)",
		"2. Accountants (Business and Financial)",
		"Your highest scores are on the Investigative and Conventional dimensions",
		"Counselor text.",
	} {
		if !strings.Contains(md, fragment) {
			t.Fatalf("markdown is missing %q:\n%s", fragment, md)
		}
	}
}
