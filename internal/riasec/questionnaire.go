package riasec

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidQuestionnaire signals a questionnaire that cannot produce a valid
// profile, e.g. a dimension with no questions assigned to it.
var ErrInvalidQuestionnaire = errors.New("invalid questionnaire")

//go:embed questions.yaml
var defaultQuestionnaire []byte

// Question is a single immutable questionnaire item.
type Question struct {
	Text      string    `yaml:"text"`
	Dimension Dimension `yaml:"dimension"`
}

// Scale bounds the integer responses a question accepts.
type Scale struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Questionnaire is an ordered, fixed set of questions sharing one answer scale.
// It is static configuration: counts per dimension are validated once at load
// time, never recomputed during aggregation.
type Questionnaire struct {
	Scale     Scale      `yaml:"scale"`
	Questions []Question `yaml:"questions"`
}

// Default returns the built-in 42-question questionnaire (7 per dimension,
// answered on a 1..5 scale).
func Default() (*Questionnaire, error) {
	return parse(defaultQuestionnaire)
}

// LoadFile reads a questionnaire from a YAML file.
func LoadFile(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode questionnaire: %w", err)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// Len returns the number of questions.
func (q *Questionnaire) Len() int {
	return len(q.Questions)
}

// CountByDimension returns how many questions are tagged with each dimension.
func (q *Questionnaire) CountByDimension() [NumDimensions]int {
	var counts [NumDimensions]int
	for _, question := range q.Questions {
		counts[question.Dimension]++
	}
	return counts
}

// Validate checks the per-dimension coverage invariant and the answer scale.
// A dimension with zero questions would make aggregation divide by zero, so it
// is rejected here, at configuration time.
func (q *Questionnaire) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestionnaire)
	}
	if q.Scale.Min >= q.Scale.Max {
		return fmt.Errorf("%w: answer scale %d..%d is not ascending", ErrInvalidQuestionnaire, q.Scale.Min, q.Scale.Max)
	}
	counts := q.CountByDimension()
	for _, d := range Dimensions() {
		if counts[d] == 0 {
			return fmt.Errorf("%w: dimension %s has no questions", ErrInvalidQuestionnaire, d.Name())
		}
	}
	return nil
}
