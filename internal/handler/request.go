package handler

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"farmersconnect/internal/errors"
)

// bindAndValidate decodes the body into req and runs struct validation.
// Failures come back as validation errors naming the first bad field.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Invalid("body", "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return translateValidation(err)
	}
	return nil
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Invalid("body", err.Error())
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return errors.Missing(fe.Field())
	}
	return errors.Invalid(fe.Field(), "failed "+fe.Tag()+" check")
}

// parseNumber accepts a JSON number or a numeric string.
func parseNumber(field string, raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.Missing(field)
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errors.Invalid(field, "must be a number")
		}
		v, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, errors.Invalid(field, "must be a number")
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Invalid(field, "must be a finite number")
	}
	return v, nil
}

// parseInteger is parseNumber restricted to whole values.
func parseInteger(field string, raw json.RawMessage) (int, error) {
	v, err := parseNumber(field, raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, errors.Invalid(field, "must be an integer")
	}
	return int(v), nil
}
