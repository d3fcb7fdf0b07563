// Package ai defines the optional advice layer. It never participates in
// scoring or ranking: advisors consume a finished result set and produce
// narrative text on top of it.
package ai

import (
	"context"

	"github.com/fortemind/career-compass/internal/recommend"
	"github.com/fortemind/career-compass/internal/riasec"
)

// Insight is a generated narrative about a respondent's results.
type Insight struct {
	Text string
	Raw  string
}

// Advisor turns a profile and its ranked recommendations into an Insight.
type Advisor interface {
	Explain(ctx context.Context, profile riasec.Profile, recs []recommend.Recommendation) (*Insight, error)
}
