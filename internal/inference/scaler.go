package inference

import (
	"errors"
	"fmt"
)

// MinMaxScaler applies x*scale + min per feature, the closed form of a
// min-max transform fit offline.
type MinMaxScaler struct {
	Scale []float64 `json:"scale"`
	Min   []float64 `json:"min"`
}

// LoadMinMaxScaler reads a scaler exported as {"scale": [...], "min": [...]}.
func LoadMinMaxScaler(path string) (*MinMaxScaler, error) {
	var s MinMaxScaler
	if err := loadJSON(path, &s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("minmax scaler %s: %w", path, err)
	}
	return &s, nil
}

func (s *MinMaxScaler) validate() error {
	if len(s.Scale) == 0 {
		return errors.New("empty scale")
	}
	if len(s.Scale) != len(s.Min) {
		return fmt.Errorf("scale has %d entries, min has %d", len(s.Scale), len(s.Min))
	}
	return nil
}

// Transform returns a new scaled vector.
func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(len(x), len(s.Scale)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale[i] + s.Min[i]
	}
	return out, nil
}

// StandardScaler centers and scales each feature: (x - mean) / scale.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadStandardScaler reads a scaler exported as {"mean": [...], "scale": [...]}.
func LoadStandardScaler(path string) (*StandardScaler, error) {
	var s StandardScaler
	if err := loadJSON(path, &s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("standard scaler %s: %w", path, err)
	}
	return &s, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("empty mean")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("mean has %d entries, scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

// Transform returns a new standardized vector. A zero scale (constant
// feature at fit time) is treated as 1.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(len(x), len(s.Mean)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
