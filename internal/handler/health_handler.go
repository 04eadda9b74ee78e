package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"farmersconnect/internal/cache"
	"farmersconnect/internal/service"
)

var appStart = time.Now()

// HealthHandler reports dependency status.
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Client
	crop  service.CropService
	price service.PriceService
}

// NewHealthHandler creates a health handler. db is nil in memory mode.
func NewHealthHandler(db *gorm.DB, c *cache.Client, crop service.CropService, price service.PriceService) *HealthHandler {
	return &HealthHandler{db: db, cache: c, crop: crop, price: price}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// HealthResponse is the health body.
type HealthResponse struct {
	Status    string           `json:"status"`
	UptimeSec int              `json:"uptime_sec"`
	Checks    map[string]check `json:"checks"`
	Time      string           `json:"time"`
}

// Health godoc
// @Summary Service health
// @Description Database is required; models and cache degrade the status without failing it.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]check{
		"database":    h.database(ctx),
		"crop_model":  modelCheck(h.crop != nil && h.crop.Available()),
		"price_model": modelCheck(h.price != nil && h.price.Available()),
	}
	if h.cache.Enabled() {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = check{Err: err.Error()}
		} else {
			checks["cache"] = check{OK: true}
		}
	}

	status, code := "ok", http.StatusOK
	for name, ch := range checks {
		if ch.OK {
			continue
		}
		if name == "database" {
			status, code = "down", http.StatusServiceUnavailable
			break
		}
		status = "degraded"
	}

	return c.JSON(code, HealthResponse{
		Status:    status,
		UptimeSec: int(time.Since(appStart).Seconds()),
		Checks:    checks,
		Time:      time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) database(ctx context.Context) check {
	if h.db == nil {
		return check{OK: true}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func modelCheck(loaded bool) check {
	if loaded {
		return check{OK: true}
	}
	return check{Err: "not loaded"}
}
