// Package projector wraps the pretrained preprocessing and embedding steps the
// ranker depends on. Both operations are batched so a whole catalog can be
// projected in one call.
package projector

import "fmt"

// Projector is the capability injected into the ranker. Implementations must
// be deterministic: identical input batches produce identical output batches.
type Projector interface {
	// Normalize applies the fitted feature scaling to every vector in the batch.
	Normalize(batch [][]float64) ([][]float64, error)
	// Embed runs the pretrained model forward pass on every scaled vector.
	Embed(batch [][]float64) ([][]float32, error)
}

// Identity is a projector that scales and embeds nothing: vectors pass through
// unchanged. Ranking against it reduces to cosine similarity on raw profiles,
// which keeps unit tests and model-less setups deterministic.
type Identity struct{}

// Normalize returns a copy of the batch.
func (Identity) Normalize(batch [][]float64) ([][]float64, error) {
	out := make([][]float64, len(batch))
	for i, vec := range batch {
		out[i] = append([]float64(nil), vec...)
	}
	return out, nil
}

// Embed converts each vector to float32 unchanged.
func (Identity) Embed(batch [][]float64) ([][]float32, error) {
	out := make([][]float32, len(batch))
	for i, vec := range batch {
		emb := make([]float32, len(vec))
		for j, v := range vec {
			emb[j] = float32(v)
		}
		out[i] = emb
	}
	return out, nil
}

func checkWidth(batch [][]float64, want int) error {
	for i, vec := range batch {
		if len(vec) != want {
			return fmt.Errorf("vector %d has %d components, expected %d", i, len(vec), want)
		}
	}
	return nil
}
