package inference

import (
	"context"
	"errors"
	"fmt"
)

// PriceArtifacts locates the files that make up the price estimator.
type PriceArtifacts struct {
	ModelPath     string
	MarketPath    string
	CommodityPath string
	UnitPath      string
}

// CategoryError names which encoder rejected a value.
type CategoryError struct {
	Field string
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// Unwrap ties the error to ErrUnknownCategory.
func (e *CategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// PriceEstimator encodes market, commodity and unit and regresses the unit
// price on [market, commodity, unit, year, month].
type PriceEstimator struct {
	market    *LabelEncoder
	commodity *LabelEncoder
	unit      *LabelEncoder
	regressor Regressor
}

// NewPriceEstimator assembles an estimator from already loaded parts.
func NewPriceEstimator(market, commodity, unit *LabelEncoder, regressor Regressor) (*PriceEstimator, error) {
	if market == nil || commodity == nil || unit == nil || regressor == nil {
		return nil, errors.New("price estimator needs three encoders and a regressor")
	}
	return &PriceEstimator{market: market, commodity: commodity, unit: unit, regressor: regressor}, nil
}

// LoadPriceEstimator reads the encoders from disk. When regressor is nil the
// model is read from a.ModelPath as well.
func LoadPriceEstimator(a PriceArtifacts, regressor Regressor) (*PriceEstimator, error) {
	market, err := LoadLabelEncoder(a.MarketPath)
	if err != nil {
		return nil, err
	}
	commodity, err := LoadLabelEncoder(a.CommodityPath)
	if err != nil {
		return nil, err
	}
	unit, err := LoadLabelEncoder(a.UnitPath)
	if err != nil {
		return nil, err
	}
	if regressor == nil {
		ens, err := LoadTreeEnsemble(a.ModelPath)
		if err != nil {
			return nil, err
		}
		if ens.Task != TaskRegression || ens.NumFeatures != 5 {
			return nil, fmt.Errorf("price model %s must be a 5-feature regressor", a.ModelPath)
		}
		regressor = ens
	}
	return NewPriceEstimator(market, commodity, unit, regressor)
}

// UnitPrice estimates the price of one unit.
func (p *PriceEstimator) UnitPrice(ctx context.Context, market, commodity, unit string, year, month int) (float64, error) {
	m, err := p.market.Encode(market)
	if err != nil {
		return 0, &CategoryError{Field: "market", Value: market}
	}
	c, err := p.commodity.Encode(commodity)
	if err != nil {
		return 0, &CategoryError{Field: "commodity", Value: commodity}
	}
	u, err := p.unit.Encode(unit)
	if err != nil {
		return 0, &CategoryError{Field: "unit", Value: unit}
	}

	x := []float64{float64(m), float64(c), float64(u), float64(year), float64(month)}
	price, err := p.regressor.PredictValue(ctx, x)
	if err != nil {
		return 0, fmt.Errorf("regress: %w", err)
	}
	return price, nil
}
