package inference

import (
	"context"
	"errors"
	"fmt"
)

// CropFeatureCount is the width of a crop sample.
const CropFeatureCount = 7

// CropArtifacts locates the files that make up the crop recommender.
type CropArtifacts struct {
	ModelPath    string
	MinMaxPath   string
	StandardPath string
}

// CropRecommender runs min-max scaling, then standardization, then the
// classifier. The standardizer was fit on min-max output, so the order is
// fixed.
type CropRecommender struct {
	minmax     Transformer
	standard   Transformer
	classifier Classifier
}

// NewCropRecommender assembles a recommender from already loaded parts.
func NewCropRecommender(minmax, standard Transformer, classifier Classifier) (*CropRecommender, error) {
	if minmax == nil || standard == nil || classifier == nil {
		return nil, errors.New("crop recommender needs both scalers and a classifier")
	}
	return &CropRecommender{minmax: minmax, standard: standard, classifier: classifier}, nil
}

// LoadCropRecommender reads the scalers from disk. When classifier is nil
// the model is read from a.ModelPath as well.
func LoadCropRecommender(a CropArtifacts, classifier Classifier) (*CropRecommender, error) {
	mm, err := LoadMinMaxScaler(a.MinMaxPath)
	if err != nil {
		return nil, err
	}
	sc, err := LoadStandardScaler(a.StandardPath)
	if err != nil {
		return nil, err
	}
	if len(mm.Scale) != CropFeatureCount || len(sc.Mean) != CropFeatureCount {
		return nil, fmt.Errorf("crop scalers must cover %d features", CropFeatureCount)
	}
	if classifier == nil {
		ens, err := LoadTreeEnsemble(a.ModelPath)
		if err != nil {
			return nil, err
		}
		if ens.Task != TaskClassification {
			return nil, fmt.Errorf("crop model %s is not a classifier", a.ModelPath)
		}
		classifier = ens
	}
	return NewCropRecommender(mm, sc, classifier)
}

// ClassID returns the raw classifier output for one sample.
func (r *CropRecommender) ClassID(ctx context.Context, features []float64) (int, error) {
	scaled, err := r.minmax.Transform(features)
	if err != nil {
		return 0, fmt.Errorf("minmax transform: %w", err)
	}
	scaled, err = r.standard.Transform(scaled)
	if err != nil {
		return 0, fmt.Errorf("standard transform: %w", err)
	}
	id, err := r.classifier.PredictClass(ctx, scaled)
	if err != nil {
		return 0, fmt.Errorf("classify: %w", err)
	}
	return id, nil
}

// Recommend returns the crop name for one sample.
func (r *CropRecommender) Recommend(ctx context.Context, features []float64) (string, error) {
	id, err := r.ClassID(ctx, features)
	if err != nil {
		return "", err
	}
	return CropName(id), nil
}
