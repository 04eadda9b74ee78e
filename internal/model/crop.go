package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CropFeatures is one soil and climate sample, in the column order the
// classifier was fit on.
type CropFeatures struct {
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
	Temperature float64
	Humidity    float64
	PH          float64
	Rainfall    float64
}

// Vector returns the features as N, P, K, temperature, humidity, pH, rainfall.
func (f CropFeatures) Vector() []float64 {
	return []float64{f.Nitrogen, f.Phosphorus, f.Potassium, f.Temperature, f.Humidity, f.PH, f.Rainfall}
}

// CropObservation is an append-only audit record written for every
// successful recommendation.
type CropObservation struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string    `json:"name" gorm:"size:50;not null"`
	Nitrogen        float64   `json:"nitrogen" gorm:"not null"`
	Phosphorus      float64   `json:"phosphorus" gorm:"not null"`
	Potassium       float64   `json:"potassium" gorm:"not null"`
	Temperature     float64   `json:"temperature" gorm:"not null"`
	Humidity        float64   `json:"humidity" gorm:"not null"`
	PH              float64   `json:"ph" gorm:"column:ph;not null"`
	Rainfall        float64   `json:"rainfall" gorm:"not null"`
	RecommendedCrop string    `json:"recommended_crop" gorm:"size:50;not null;index"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewCropObservation builds the audit record for a sample and its label.
func NewCropObservation(f CropFeatures, crop string) *CropObservation {
	return &CropObservation{
		Name:            crop,
		Nitrogen:        f.Nitrogen,
		Phosphorus:      f.Phosphorus,
		Potassium:       f.Potassium,
		Temperature:     f.Temperature,
		Humidity:        f.Humidity,
		PH:              f.PH,
		Rainfall:        f.Rainfall,
		RecommendedCrop: crop,
	}
}

// BeforeCreate sets UUID before creating the record.
func (o *CropObservation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
