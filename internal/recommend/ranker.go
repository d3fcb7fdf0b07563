// Package recommend ranks catalog entries against a respondent's profile in
// the projector's embedding space.
package recommend

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/projector"
	"github.com/fortemind/career-compass/internal/riasec"
)

// DefaultTopN is used when the caller does not ask for a specific result size.
const DefaultTopN = 5

// Recommendation is one ranked catalog entry. Recommendations are derived,
// read-only data, recomputed on every request.
type Recommendation struct {
	Entry catalog.Entry
	// Score is the cosine similarity between the job and user embeddings.
	Score float64
	// Rank is the 1-based position in the result.
	Rank int
	// Rationale names the respondent's two strongest dimensions. It is shared
	// by every recommendation in one result set.
	Rationale string
}

// Ranker scores a fixed catalog against user profiles. The catalog and the
// projector are read-only for the ranker's lifetime, so catalog embeddings are
// computed once and reused across requests.
type Ranker struct {
	catalog   *catalog.Catalog
	projector projector.Projector
	logger    *zap.Logger

	embedOnce sync.Once
	jobEmbeds [][]float32
	embedErr  error
}

// New builds a ranker over the given catalog and projector.
func New(c *catalog.Catalog, p projector.Projector, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{catalog: c, projector: p, logger: logger}
}

// Recommend returns the topN catalog entries most similar to the profile,
// ordered by descending similarity. Ties keep the catalog's input order. A
// topN of zero or less falls back to DefaultTopN; a topN beyond the catalog
// size returns the whole catalog ranked.
func (r *Ranker) Recommend(profile riasec.Profile, topN int) ([]Recommendation, error) {
	if r.catalog == nil || r.catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	jobEmbeds, err := r.jobEmbeddings()
	if err != nil {
		return nil, err
	}

	userEmbed, err := r.project([][]float64{profile.Values()})
	if err != nil {
		return nil, err
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, r.catalog.Len())
	for i, jobEmbed := range jobEmbeds {
		score, err := cosineSimilarity(jobEmbed, userEmbed[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProjector, err)
		}
		scores[i] = scored{index: i, score: score}
	}

	// Stable sort keeps catalog order for equal scores, which makes the
	// result reproducible for identical inputs.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if topN > len(scores) {
		topN = len(scores)
	}

	rationale := buildRationale(profile)
	recs := make([]Recommendation, topN)
	for i := 0; i < topN; i++ {
		recs[i] = Recommendation{
			Entry:     r.catalog.Entries[scores[i].index],
			Score:     scores[i].score,
			Rank:      i + 1,
			Rationale: rationale,
		}
	}

	r.logger.Debug("ranked catalog against profile",
		zap.Int("catalog_size", r.catalog.Len()),
		zap.Int("returned", len(recs)),
		zap.String("profile", profile.String()),
	)

	return recs, nil
}

// jobEmbeddings projects the whole catalog once and caches the result.
func (r *Ranker) jobEmbeddings() ([][]float32, error) {
	r.embedOnce.Do(func() {
		embeds, err := r.project(r.catalog.Profiles())
		if err != nil {
			r.embedErr = err
			return
		}
		r.jobEmbeds = embeds
		r.logger.Debug("cached catalog embeddings", zap.Int("count", len(embeds)))
	})
	return r.jobEmbeds, r.embedErr
}

// project runs the two-step normalize+embed pipeline on a batch, wrapping any
// failure or malformed output as a projector error.
func (r *Ranker) project(batch [][]float64) ([][]float32, error) {
	scaled, err := r.projector.Normalize(batch)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize: %v", ErrProjector, err)
	}
	if len(scaled) != len(batch) {
		return nil, fmt.Errorf("%w: normalize returned %d vectors for %d inputs", ErrProjector, len(scaled), len(batch))
	}

	embeds, err := r.projector.Embed(scaled)
	if err != nil {
		return nil, fmt.Errorf("%w: embed: %v", ErrProjector, err)
	}
	if len(embeds) != len(batch) {
		return nil, fmt.Errorf("%w: embed returned %d vectors for %d inputs", ErrProjector, len(embeds), len(batch))
	}
	return embeds, nil
}

// buildRationale names the respondent's two strongest dimensions. Ties are
// broken by the fixed dimension order, so the string is deterministic.
func buildRationale(profile riasec.Profile) string {
	top := profile.TopDimensions(2)
	return fmt.Sprintf("Your highest scores are on the %s and %s dimensions",
		top[0].Name(), top[1].Name())
}
