package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/inference"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/model"
)

type MockCropRecommender struct {
	mock.Mock
}

func (m *MockCropRecommender) Recommend(ctx context.Context, features []float64) (string, error) {
	args := m.Called(ctx, features)
	return args.String(0), args.Error(1)
}

type MockObservationRepository struct {
	mock.Mock
}

func (m *MockObservationRepository) Create(ctx context.Context, obs *model.CropObservation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockObservationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var sample = model.CropFeatures{Nitrogen: 90, Phosphorus: 42, Potassium: 43, Temperature: 20.8, Humidity: 82, PH: 6.5, Rainfall: 202.9}

func TestCropService_Recommend(t *testing.T) {
	rec := new(MockCropRecommender)
	rec.On("Recommend", mock.Anything, sample.Vector()).Return("Rice", nil)
	obs := new(MockObservationRepository)
	obs.On("Create", mock.Anything, mock.MatchedBy(func(o *model.CropObservation) bool {
		return o.RecommendedCrop == "Rice" && o.PH == 6.5 && o.Rainfall == 202.9
	})).Return(nil)

	service := NewCropService(rec, obs, zerolog.Nop(), metrics.New())
	crop, err := service.Recommend(context.Background(), sample)

	require.NoError(t, err)
	assert.Equal(t, "Rice", crop)
	assert.True(t, service.Available())
	rec.AssertExpectations(t)
	obs.AssertExpectations(t)
}

func TestCropService_Unavailable(t *testing.T) {
	service := NewCropService(nil, nil, zerolog.Nop(), nil)

	_, err := service.Recommend(context.Background(), sample)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.False(t, service.Available())
}

func TestCropService_WithoutObservationLog(t *testing.T) {
	rec := new(MockCropRecommender)
	rec.On("Recommend", mock.Anything, mock.Anything).Return(inference.UnknownCrop, nil)

	crop, err := NewCropService(rec, nil, zerolog.Nop(), nil).Recommend(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, inference.UnknownCrop, crop)
}

func TestCropService_Failures(t *testing.T) {
	t.Run("inference error", func(t *testing.T) {
		rec := new(MockCropRecommender)
		rec.On("Recommend", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		_, err := NewCropService(rec, nil, zerolog.Nop(), nil).Recommend(context.Background(), sample)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("observation write error", func(t *testing.T) {
		rec := new(MockCropRecommender)
		rec.On("Recommend", mock.Anything, mock.Anything).Return("Maize", nil)
		obs := new(MockObservationRepository)
		obs.On("Create", mock.Anything, mock.Anything).Return(errors.New("locked"))

		_, err := NewCropService(rec, obs, zerolog.Nop(), nil).Recommend(context.Background(), sample)
		assert.ErrorContains(t, err, "record observation")
	})
}
