package repository

import (
	"context"

	"gorm.io/gorm"

	"farmersconnect/internal/model"
)

// CropObservationRepository defines the append-only audit log of
// recommendations.
type CropObservationRepository interface {
	Create(ctx context.Context, obs *model.CropObservation) error
	Count(ctx context.Context) (int64, error)
}

type cropObservationRepository struct {
	db *gorm.DB
}

// NewCropObservationRepository creates a new observation repository.
func NewCropObservationRepository(db *gorm.DB) CropObservationRepository {
	return &cropObservationRepository{db: db}
}

// Create appends one observation.
func (r *cropObservationRepository) Create(ctx context.Context, obs *model.CropObservation) error {
	return r.db.WithContext(ctx).Create(obs).Error
}

// Count returns the number of stored observations.
func (r *cropObservationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.CropObservation{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
