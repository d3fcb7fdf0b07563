package projector

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestIdentityPassThrough(t *testing.T) {
	t.Parallel()

	batch := [][]float64{{1, 2, 3}, {4, 5, 6}}

	scaled, err := Identity{}.Normalize(batch)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	// The copy must be independent of the input.
	scaled[0][0] = 99
	if batch[0][0] != 1 {
		t.Fatalf("normalize must not alias its input")
	}

	embedded, err := Identity{}.Embed(batch)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	for i, vec := range batch {
		for j, v := range vec {
			if embedded[i][j] != float32(v) {
				t.Fatalf("embedding [%d][%d]: expected %v, got %v", i, j, v, embedded[i][j])
			}
		}
	}
}

func TestScalerTransform(t *testing.T) {
	t.Parallel()

	s := &Scaler{
		Mean:  []float64{2, 4},
		Scale: []float64{2, 0.5},
	}
	if err := s.validate(); err != nil {
		t.Fatalf("scaler should validate: %v", err)
	}

	out, err := s.Transform([][]float64{{4, 5}, {2, 4}})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	expect := [][]float64{{1, 2}, {0, 0}}
	for i := range expect {
		for j := range expect[i] {
			if math.Abs(out[i][j]-expect[i][j]) > 1e-12 {
				t.Fatalf("[%d][%d]: expected %v, got %v", i, j, expect[i][j], out[i][j])
			}
		}
	}
}

func TestScalerRejectsWidthMismatch(t *testing.T) {
	t.Parallel()

	s := &Scaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}
	if _, err := s.Transform([][]float64{{1, 2, 3}}); err == nil {
		t.Fatalf("expected error for vector of wrong width")
	}
}

func TestLoadScaler(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid",
			payload: `{"mean":[1,2,3,4,5,6],"scale":[1,1,1,1,1,1]}`,
		},
		{
			name:    "width mismatch",
			payload: `{"mean":[1,2],"scale":[1]}`,
			wantErr: true,
		},
		{
			name:    "zero scale",
			payload: `{"mean":[1],"scale":[0]}`,
			wantErr: true,
		},
		{
			name:    "empty",
			payload: `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.payload), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			_, err := LoadScaler(path)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
