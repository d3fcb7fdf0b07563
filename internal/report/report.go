// Package report turns a finished recommendation session into plain data
// artifacts. It emits no styling: rendering beyond markdown text is somebody
// else's job.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fortemind/career-compass/internal/recommend"
	"github.com/fortemind/career-compass/internal/riasec"
)

// Summary collects everything one session produced. It is assembled once and
// never mutated afterwards.
type Summary struct {
	SessionID       string
	CreatedAt       time.Time
	Respondent      string
	Profile         riasec.Profile
	Recommendations []recommend.Recommendation
	Insight         string
}

// New assembles a summary for a finished session.
func New(respondent string, profile riasec.Profile, recs []recommend.Recommendation, insight string) *Summary {
	return &Summary{
		SessionID:       uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Respondent:      respondent,
		Profile:         profile,
		Recommendations: recs,
		Insight:         insight,
	}
}

type jsonScore struct {
	Dimension string  `json:"dimension"`
	Code      string  `json:"code"`
	Score     float64 `json:"score"`
}

type jsonRecommendation struct {
	Rank      int     `json:"rank"`
	Title     string  `json:"title"`
	Family    string  `json:"family"`
	Score     float64 `json:"similarity"`
	Rationale string  `json:"rationale"`
}

type jsonSummary struct {
	SessionID       string               `json:"session_id"`
	CreatedAt       time.Time            `json:"created_at"`
	Respondent      string               `json:"respondent,omitempty"`
	Scores          []jsonScore          `json:"scores"`
	DominantType    string               `json:"dominant_type"`
	Recommendations []jsonRecommendation `json:"recommendations"`
	Insight         string               `json:"insight,omitempty"`
}

// MarshalJSON emits scores in the fixed dimension order.
func (s *Summary) MarshalJSON() ([]byte, error) {
	out := jsonSummary{
		SessionID:    s.SessionID,
		CreatedAt:    s.CreatedAt,
		Respondent:   s.Respondent,
		DominantType: s.Profile.Dominant().Name(),
		Insight:      s.Insight,
	}
	for _, d := range riasec.Dimensions() {
		out.Scores = append(out.Scores, jsonScore{
			Dimension: d.Name(),
			Code:      d.Code(),
			Score:     s.Profile.Score(d),
		})
	}
	for _, rec := range s.Recommendations {
		out.Recommendations = append(out.Recommendations, jsonRecommendation{
			Rank:      rec.Rank,
			Title:     rec.Entry.Title,
			Family:    rec.Entry.Family,
			Score:     rec.Score,
			Rationale: rec.Rationale,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteJSON persists the summary as JSON.
func (s *Summary) WriteJSON(path string) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the summary as a markdown document.
func (s *Summary) Markdown() string {
	var b strings.Builder

	b.WriteString("# RIASEC Career Report\n\n")
	if s.Respondent != "" {
		fmt.Fprintf(&b, "Respondent: %s\n\n", s.Respondent)
	}
	fmt.Fprintf(&b, "Session: %s\n\nDate: %s\n\n", s.SessionID, s.CreatedAt.Format("2006-01-02 15:04 MST"))

	b.WriteString("## Scores\n\n")
	for _, d := range riasec.Dimensions() {
		fmt.Fprintf(&b, "- %s (%s): %.2f\n", d.Name(), d.Code(), s.Profile.Score(d))
	}

	dominant := s.Profile.Dominant()
	fmt.Fprintf(&b, "\n## Dominant type: %s\n\n%s\n", dominant.Name(), dominant.Description())

	b.WriteString("\n## Recommended occupations\n\n")
	for _, rec := range s.Recommendations {
		fmt.Fprintf(&b, "%d. %s (%s), similarity %.3f\n", rec.Rank, rec.Entry.Title, rec.Entry.Family, rec.Score)
	}
	if len(s.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n%s.\n", s.Recommendations[0].Rationale)
	}

	if s.Insight != "" {
		fmt.Fprintf(&b, "\n## Counselor insight\n\n%s\n", s.Insight)
	}

	return b.String()
}

// WriteMarkdown persists the summary as a markdown file.
func (s *Summary) WriteMarkdown(path string) error {
	if err := os.WriteFile(path, []byte(s.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
