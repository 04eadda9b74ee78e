// Package inference wraps pre-trained scalers, encoders and estimators that
// were fit offline and exported as JSON. Everything here is read-only after
// loading and safe for concurrent use.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// ErrUnknownCategory is returned by a LabelEncoder for values outside its
// vocabulary.
var ErrUnknownCategory = errors.New("unknown category")

// Classifier predicts a class id for one feature vector.
type Classifier interface {
	PredictClass(ctx context.Context, x []float64) (int, error)
}

// Regressor predicts a continuous value for one feature vector.
type Regressor interface {
	PredictValue(ctx context.Context, x []float64) (float64, error)
}

// Transformer rescales one feature vector.
type Transformer interface {
	Transform(x []float64) ([]float64, error)
}

func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}

func checkWidth(got, want int) error {
	if got != want {
		return fmt.Errorf("expected %d features, got %d", want, got)
	}
	return nil
}
