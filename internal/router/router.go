package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"farmersconnect/internal/config"
	"farmersconnect/internal/handler"
	"farmersconnect/internal/logger"
	"farmersconnect/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	rec *metrics.Recorder,
	authHandler *handler.AuthHandler,
	cropHandler *handler.CropHandler,
	priceHandler *handler.PriceHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(logger.RequestLogger(log))
	e.Use(rec.Middleware())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}))
	}

	e.Validator = NewCustomValidator()

	e.GET("/healthz", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(rec.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Credential routes are rate limited per client IP.
	limited := api.Group("")
	if cfg.RateLimitRequests > 0 {
		limited.Use(echo.WrapMiddleware(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow)))
	}
	limited.POST("/register", authHandler.Register)
	limited.POST("/login", authHandler.Login)

	api.POST("/recommend_crop", cropHandler.Recommend)
	api.GET("/options", priceHandler.Options)
	api.POST("/predict", priceHandler.Predict)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator reports field errors by their JSON names.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
