package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"farmersconnect/internal/errors"
	"farmersconnect/internal/model"
	"farmersconnect/internal/service"
)

// CropHandler handles crop recommendation.
type CropHandler struct {
	cropService service.CropService
}

// NewCropHandler creates a new crop handler.
func NewCropHandler(cropService service.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// RecommendRequest carries one soil and climate sample. Each value may be a
// JSON number or a numeric string.
type RecommendRequest struct {
	Nitrogen    json.RawMessage `json:"Nitrogen" validate:"required" swaggertype:"number" example:"90"`
	Phosphorus  json.RawMessage `json:"Phosphorus" validate:"required" swaggertype:"number" example:"42"`
	Potassium   json.RawMessage `json:"Potassium" validate:"required" swaggertype:"number" example:"43"`
	Temperature json.RawMessage `json:"Temperature" validate:"required" swaggertype:"number" example:"20.8"`
	Humidity    json.RawMessage `json:"Humidity" validate:"required" swaggertype:"number" example:"82"`
	PH          json.RawMessage `json:"pH" validate:"required" swaggertype:"number" example:"6.5"`
	Rainfall    json.RawMessage `json:"Rainfall" validate:"required" swaggertype:"number" example:"202.9"`
}

// RecommendResponse is the success body.
type RecommendResponse struct {
	Recommendation string `json:"recommendation"`
}

func (r *RecommendRequest) features() (model.CropFeatures, error) {
	var f model.CropFeatures
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *float64
	}{
		{"Nitrogen", r.Nitrogen, &f.Nitrogen},
		{"Phosphorus", r.Phosphorus, &f.Phosphorus},
		{"Potassium", r.Potassium, &f.Potassium},
		{"Temperature", r.Temperature, &f.Temperature},
		{"Humidity", r.Humidity, &f.Humidity},
		{"pH", r.PH, &f.PH},
		{"Rainfall", r.Rainfall, &f.Rainfall},
	}
	for _, fd := range fields {
		v, err := parseNumber(fd.name, fd.raw)
		if err != nil {
			return model.CropFeatures{}, err
		}
		*fd.dst = v
	}
	return f, nil
}

// Recommend godoc
// @Summary Recommend a crop for a soil and climate sample
// @Tags crop
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Soil and climate sample"
// @Success 200 {object} RecommendResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /recommend_crop [post]
func (h *CropHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return cropError(err)
	}
	f, err := req.features()
	if err != nil {
		return cropError(err)
	}

	crop, err := h.cropService.Recommend(c.Request().Context(), f)
	if err != nil {
		return cropError(err)
	}

	return c.JSON(http.StatusOK, RecommendResponse{
		Recommendation: fmt.Sprintf("%s is the best crop to be cultivated right there", crop),
	})
}

func cropError(err error) error {
	he := errors.MapErrorToHTTP(err, http.StatusInternalServerError)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
