package clinical

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler standardises features as (x - mean) / scale, the transform of a
// fitted scikit-learn StandardScaler.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
	// Optional; when present it must match FeatureColumns.
	FeatureNames []string `json:"feature_names_in,omitempty"`
}

// LoadScaler reads a JSON export of a fitted scaler.
func LoadScaler(path string) (*Scaler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scaler
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scaler) check() error {
	if len(s.Mean) != NumFeatures || len(s.Scale) != NumFeatures {
		return fmt.Errorf("want %d means and scales, got %d and %d", NumFeatures, len(s.Mean), len(s.Scale))
	}
	if len(s.FeatureNames) == 0 {
		return nil
	}
	if len(s.FeatureNames) != NumFeatures {
		return fmt.Errorf("want %d feature names, got %d", NumFeatures, len(s.FeatureNames))
	}
	for i, name := range s.FeatureNames {
		if name != FeatureColumns[i] {
			return fmt.Errorf("column %d is %q, want %q", i, name, FeatureColumns[i])
		}
	}
	return nil
}

// Transform standardises one row. A zero scale is treated as 1, which is
// what scikit-learn stores for constant columns.
func (s *Scaler) Transform(f Features) []float64 {
	out := make([]float64, NumFeatures)
	for i, x := range f {
		sc := s.Scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (x - s.Mean[i]) / sc
	}
	return out
}

// fitTransform standardises a row with a scaler fitted on that row alone.
// Every column is constant, so the result is all zeros; this is the
// behaviour served when no scaler artifact is available.
func fitTransform(f Features) []float64 {
	s := Scaler{Mean: f[:], Scale: make([]float64, NumFeatures)}
	return s.Transform(f)
}
