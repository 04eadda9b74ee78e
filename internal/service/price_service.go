package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"farmersconnect/internal/cache"
	"farmersconnect/internal/catalog"
	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/inference"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/model"
)

// PriceEstimator returns the estimated price of one unit.
type PriceEstimator interface {
	UnitPrice(ctx context.Context, market, commodity, unit string, year, month int) (float64, error)
}

// PriceService answers price prediction and catalog requests.
type PriceService interface {
	Predict(ctx context.Context, q model.PriceQuery) (*model.PriceQuote, error)
	Options() catalog.Options
	Available() bool
}

type priceService struct {
	estimator PriceEstimator
	catalog   *catalog.Catalog
	cache     *cache.Client
	cacheTTL  time.Duration
	log       zerolog.Logger
	metrics   *metrics.Recorder
}

// NewPriceService builds a PriceService. A nil estimator makes Predict fail
// with ErrUnavailable; a nil cache always misses.
func NewPriceService(est PriceEstimator, cat *catalog.Catalog, c *cache.Client, ttl time.Duration, log zerolog.Logger, m *metrics.Recorder) PriceService {
	if cat == nil {
		cat = catalog.Empty()
	}
	return &priceService{
		estimator: est,
		catalog:   cat,
		cache:     c,
		cacheTTL:  ttl,
		log:       log.With().Str("component", "price").Logger(),
		metrics:   m,
	}
}

func (s *priceService) Available() bool {
	return s.estimator != nil
}

func (s *priceService) Options() catalog.Options {
	return s.catalog.Get()
}

func (s *priceService) Predict(ctx context.Context, q model.PriceQuery) (*model.PriceQuote, error) {
	if s.estimator == nil {
		s.metrics.RecordPrediction(metrics.OutcomeUnavailable)
		return nil, apperrors.ErrUnavailable
	}
	if q.Quantity <= 0 {
		s.metrics.RecordPrediction(metrics.OutcomeInvalid)
		return nil, apperrors.Invalid("quantity", "quantity must be a positive integer")
	}
	if q.Month < 1 || q.Month > 12 {
		s.metrics.RecordPrediction(metrics.OutcomeInvalid)
		return nil, apperrors.Invalid("month", "month must be between 1 and 12")
	}

	unitPrice, err := s.unitPrice(ctx, q)
	if err != nil {
		var ce *inference.CategoryError
		if errors.As(err, &ce) {
			s.metrics.RecordPrediction(metrics.OutcomeInvalid)
			return nil, apperrors.UnknownCategory(ce.Field, ce.Value)
		}
		s.metrics.RecordPrediction(metrics.OutcomeError)
		return nil, fmt.Errorf("predict unit price: %w", err)
	}

	// The product stays a binary float and is rounded once when formatted,
	// so half-cent totals round on the exact binary value.
	display := strconv.FormatFloat(unitPrice*float64(q.Quantity), 'f', 2, 64)
	quote := &model.PriceQuote{
		UnitPrice:  unitPrice,
		TotalPrice: decimal.RequireFromString(display),
		Message: fmt.Sprintf("Predicted price for %d %s(s) of %s in %s on %d/%d is KES %s",
			q.Quantity, q.Unit, q.Commodity, q.Market, q.Month, q.Year, display),
	}

	s.metrics.RecordPrediction(metrics.OutcomeSuccess)
	s.log.Info().Str("prediction", quote.Message).Msg("price predicted")
	return quote, nil
}

func (s *priceService) unitPrice(ctx context.Context, q model.PriceQuery) (float64, error) {
	key := cache.PriceKey(q.Market, q.Commodity, q.Unit, q.Year, q.Month)
	if s.cache.Enabled() {
		if v, ok := s.cache.GetUnitPrice(ctx, key); ok {
			s.metrics.RecordCacheLookup(true)
			return v, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	v, err := s.estimator.UnitPrice(ctx, q.Market, q.Commodity, q.Unit, q.Year, q.Month)
	s.metrics.ObserveInference("price", time.Since(start))
	if err != nil {
		return 0, err
	}
	s.cache.SetUnitPrice(ctx, key, v, s.cacheTTL)
	return v, nil
}
