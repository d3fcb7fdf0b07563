package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/fortemind/career-compass/internal/ai"
	"github.com/fortemind/career-compass/internal/logger"
	"github.com/fortemind/career-compass/internal/recommend"
	"github.com/fortemind/career-compass/internal/riasec"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor produces a narrative insight for a finished recommendation set via
// Gemini.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewAdvisor wraps a generator. maxLogLength bounds prompt/response previews
// in debug logs.
func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Explain builds the counseling prompt from the profile and ranked jobs and
// returns Gemini's narrative.
func (a *Advisor) Explain(ctx context.Context, profile riasec.Profile, recs []recommend.Recommendation) (*ai.Insight, error) {
	if len(recs) == 0 {
		return nil, errors.New("no recommendations to explain")
	}

	prompt, err := buildPrompt(profile, recs)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini insight request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini insight response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, a.maxLogLen)),
	)

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, errors.New("gemini returned an empty insight")
	}

	return &ai.Insight{Text: text, Raw: raw}, nil
}

func buildPrompt(profile riasec.Profile, recs []recommend.Recommendation) (string, error) {
	profilePayload := make(map[string]float64, riasec.NumDimensions)
	for _, d := range riasec.Dimensions() {
		profilePayload[d.Name()] = profile.Score(d)
	}
	profileJSON, err := json.MarshalIndent(profilePayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	type job struct {
		Rank   int     `json:"rank"`
		Title  string  `json:"title"`
		Family string  `json:"family"`
		Score  float64 `json:"similarity"`
	}
	jobs := make([]job, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, job{
			Rank:   rec.Rank,
			Title:  rec.Entry.Title,
			Family: rec.Entry.Family,
			Score:  rec.Score,
		})
	}
	jobsJSON, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal recommendations payload: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{PROFILE_JSON}}", string(profileJSON))
	prompt = strings.ReplaceAll(prompt, "{{RECOMMENDATIONS_JSON}}", string(jobsJSON))
	return prompt, nil
}
