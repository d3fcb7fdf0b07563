package riasec

import (
	"errors"
	"fmt"
	"sort"
)

// ErrIncompleteAnswers signals that aggregation was requested before every
// question received a response.
var ErrIncompleteAnswers = errors.New("answer set is incomplete")

// AnswerSet collects integer responses keyed by question index. It is the only
// mutable piece of state in the engine and belongs to a single respondent.
type AnswerSet struct {
	responses map[int]int
}

// NewAnswerSet returns an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{responses: make(map[int]int)}
}

// Set records the response for the question at index. The index must lie in
// [0, q.Len()) and the value must lie within the questionnaire's scale.
// Setting an index twice overwrites the earlier response.
func (a *AnswerSet) Set(q *Questionnaire, index, value int) error {
	if index < 0 || index >= q.Len() {
		return fmt.Errorf("question index %d out of range [0, %d)", index, q.Len())
	}
	if value < q.Scale.Min || value > q.Scale.Max {
		return fmt.Errorf("response %d outside scale %d..%d", value, q.Scale.Min, q.Scale.Max)
	}
	a.responses[index] = value
	return nil
}

// Get returns the recorded response for index, if any.
func (a *AnswerSet) Get(index int) (int, bool) {
	v, ok := a.responses[index]
	return v, ok
}

// Len returns the number of answered questions.
func (a *AnswerSet) Len() int {
	return len(a.responses)
}

// Complete reports whether every question of q has a response.
func (a *AnswerSet) Complete(q *Questionnaire) bool {
	return a.missing(q) == nil
}

// missing returns the sorted indices without a response.
func (a *AnswerSet) missing(q *Questionnaire) []int {
	var idx []int
	for i := 0; i < q.Len(); i++ {
		if _, ok := a.responses[i]; !ok {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}
