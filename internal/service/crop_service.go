package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/model"
	"farmersconnect/internal/repository"
)

// CropRecommender maps a raw feature vector to a crop name.
type CropRecommender interface {
	Recommend(ctx context.Context, features []float64) (string, error)
}

// CropService answers crop recommendation requests.
type CropService interface {
	Recommend(ctx context.Context, f model.CropFeatures) (string, error)
	Available() bool
}

type cropService struct {
	recommender  CropRecommender
	observations repository.CropObservationRepository
	log          zerolog.Logger
	metrics      *metrics.Recorder
}

// NewCropService builds a CropService. A nil recommender makes every call fail
// with ErrUnavailable; a nil observations repository disables the audit log.
func NewCropService(rec CropRecommender, observations repository.CropObservationRepository, log zerolog.Logger, m *metrics.Recorder) CropService {
	return &cropService{
		recommender:  rec,
		observations: observations,
		log:          log.With().Str("component", "crop").Logger(),
		metrics:      m,
	}
}

func (s *cropService) Available() bool {
	return s.recommender != nil
}

func (s *cropService) Recommend(ctx context.Context, f model.CropFeatures) (string, error) {
	if s.recommender == nil {
		s.metrics.RecordRecommendation(metrics.OutcomeUnavailable)
		return "", apperrors.ErrUnavailable
	}

	start := time.Now()
	crop, err := s.recommender.Recommend(ctx, f.Vector())
	s.metrics.ObserveInference("crop", time.Since(start))
	if err != nil {
		s.metrics.RecordRecommendation(metrics.OutcomeError)
		return "", fmt.Errorf("recommend crop: %w", err)
	}

	if s.observations != nil {
		if err := s.observations.Create(ctx, model.NewCropObservation(f, crop)); err != nil {
			s.metrics.RecordRecommendation(metrics.OutcomeError)
			return "", fmt.Errorf("record observation: %w", err)
		}
	}

	s.metrics.RecordRecommendation(metrics.OutcomeSuccess)
	s.log.Info().Str("crop", crop).Msg("crop recommended")
	return crop, nil
}
