package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"farmersconnect/internal/errors"
	"farmersconnect/internal/model"
	"farmersconnect/internal/service"
)

// PriceHandler handles price prediction and the options catalog.
type PriceHandler struct {
	priceService service.PriceService
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(priceService service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// PredictRequest asks for a total price. Integer fields may be sent as
// numeric strings.
type PredictRequest struct {
	Market    *string         `json:"market" validate:"required" example:"Nairobi"`
	Commodity *string         `json:"commodity" validate:"required" example:"Maize"`
	Unit      *string         `json:"unit" validate:"required" example:"KG"`
	Quantity  json.RawMessage `json:"quantity" validate:"required" swaggertype:"integer" example:"10"`
	Year      json.RawMessage `json:"year" validate:"required" swaggertype:"integer" example:"2023"`
	Month     json.RawMessage `json:"month" validate:"required" swaggertype:"integer" example:"5"`
}

// PredictResponse is the predict body for both outcomes.
type PredictResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message,omitempty"`
	TotalPrice *float64 `json:"total_price,omitempty"`
	Error      string   `json:"error,omitempty"`
	Code       string   `json:"code,omitempty"`
}

func (r *PredictRequest) query() (model.PriceQuery, error) {
	q := model.PriceQuery{Market: *r.Market, Commodity: *r.Commodity, Unit: *r.Unit}
	var err error
	if q.Quantity, err = parseInteger("quantity", r.Quantity); err != nil {
		return q, err
	}
	if q.Year, err = parseInteger("year", r.Year); err != nil {
		return q, err
	}
	if q.Month, err = parseInteger("month", r.Month); err != nil {
		return q, err
	}
	return q, nil
}

// Predict godoc
// @Summary Predict the total price of a quantity of a commodity
// @Tags price
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Price query"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} PredictResponse
// @Failure 500 {object} PredictResponse
// @Router /predict [post]
func (h *PriceHandler) Predict(c echo.Context) error {
	var req PredictRequest
	if err := bindAndValidate(c, &req); err != nil {
		return predictError(err)
	}
	q, err := req.query()
	if err != nil {
		return predictError(err)
	}

	quote, err := h.priceService.Predict(c.Request().Context(), q)
	if err != nil {
		return predictError(err)
	}

	total := quote.TotalPrice.InexactFloat64()
	return c.JSON(http.StatusOK, PredictResponse{Success: true, Message: quote.Message, TotalPrice: &total})
}

// Options godoc
// @Summary List crops, markets and units known to the price dataset
// @Tags price
// @Produce json
// @Success 200 {object} catalog.Options
// @Router /options [get]
func (h *PriceHandler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, h.priceService.Options())
}

func predictError(err error) error {
	he := errors.MapErrorToHTTP(err, http.StatusBadRequest)
	return echo.NewHTTPError(he.StatusCode, PredictResponse{Success: false, Error: he.Message, Code: he.Code})
}
