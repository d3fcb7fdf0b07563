package projector

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler holds the parameters of a previously fitted standard scaler. The
// parameters are exported alongside the model when it is trained; the engine
// only replays the affine transform (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadScaler reads fitted scaler parameters from a JSON file.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler parameters: %w", err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scaler parameters: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no mean parameters")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean/scale width mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	for i, v := range s.Scale {
		if v == 0 {
			return fmt.Errorf("scaler component %d has zero scale", i)
		}
	}
	return nil
}

// Width returns the vector width the scaler was fitted on.
func (s *Scaler) Width() int {
	return len(s.Mean)
}

// Transform applies the fitted affine transform to every vector in the batch.
func (s *Scaler) Transform(batch [][]float64) ([][]float64, error) {
	if err := checkWidth(batch, s.Width()); err != nil {
		return nil, fmt.Errorf("scale input: %w", err)
	}
	out := make([][]float64, len(batch))
	for i, vec := range batch {
		scaled := make([]float64, len(vec))
		for j, v := range vec {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}
