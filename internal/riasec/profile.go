package riasec

import (
	"fmt"
	"sort"
	"strings"
)

// ScaleMode selects how per-dimension means are rescaled by Aggregate.
type ScaleMode string

const (
	// ScaleAsIs keeps the raw per-dimension mean, bounded by the answer scale.
	ScaleAsIs ScaleMode = "as-is"
	// ScalePercent rescales each dimension to 0..100 as sum/(max*count)*100.
	ScalePercent ScaleMode = "percent"
)

// ParseScaleMode validates a configuration value for the scale mode.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch ScaleMode(strings.TrimSpace(strings.ToLower(s))) {
	case "", ScaleAsIs, "identity":
		return ScaleAsIs, nil
	case ScalePercent:
		return ScalePercent, nil
	default:
		return "", fmt.Errorf("unknown scale mode %q", s)
	}
}

// Profile is the six-dimensional interest summary of a respondent or a job,
// ordered R, I, A, S, E, C. Profiles are immutable once produced.
type Profile [NumDimensions]float64

// Aggregate reduces a complete answer set to a profile: responses are grouped
// by their question's dimension and averaged, then rescaled per mode.
// It fails with ErrIncompleteAnswers when any question index has no response.
func Aggregate(q *Questionnaire, answers *AnswerSet, mode ScaleMode) (Profile, error) {
	var profile Profile

	if missing := answers.missing(q); len(missing) > 0 {
		return profile, fmt.Errorf("%w: %d of %d questions unanswered (first missing index %d)",
			ErrIncompleteAnswers, len(missing), q.Len(), missing[0])
	}

	var sums [NumDimensions]float64
	counts := q.CountByDimension()
	for i, question := range q.Questions {
		value, _ := answers.Get(i)
		sums[question.Dimension] += float64(value)
	}

	for _, d := range Dimensions() {
		switch mode {
		case ScalePercent:
			profile[d] = sums[d] / (float64(q.Scale.Max) * float64(counts[d])) * 100
		default:
			profile[d] = sums[d] / float64(counts[d])
		}
	}

	return profile, nil
}

// Values returns the profile as a slice, in dimension order.
func (p Profile) Values() []float64 {
	out := make([]float64, NumDimensions)
	copy(out, p[:])
	return out
}

// Score returns the value for a single dimension.
func (p Profile) Score(d Dimension) float64 {
	return p[d]
}

// TopDimensions returns the n highest-scoring dimensions. Equal scores are
// broken by the fixed dimension order, which keeps the result deterministic.
func (p Profile) TopDimensions(n int) []Dimension {
	dims := Dimensions()
	ranked := make([]Dimension, NumDimensions)
	copy(ranked[:], dims[:])
	sort.SliceStable(ranked, func(i, j int) bool {
		return p[ranked[i]] > p[ranked[j]]
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}

// Dominant returns the single highest-scoring dimension.
func (p Profile) Dominant() Dimension {
	return p.TopDimensions(1)[0]
}

func (p Profile) String() string {
	parts := make([]string, 0, NumDimensions)
	for _, d := range Dimensions() {
		parts = append(parts, fmt.Sprintf("%s=%.2f", d.Code(), p[d]))
	}
	return strings.Join(parts, " ")
}
