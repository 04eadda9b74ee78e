package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmersconnect/internal/catalog"
	"farmersconnect/internal/config"
	"farmersconnect/internal/handler"
	"farmersconnect/internal/inference"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/repository"
	"farmersconnect/internal/router"
	"farmersconnect/internal/service"
)

type testServer struct {
	e *echo.Echo
}

type serverOpts struct {
	withoutModels bool
	rateLimit     int
}

func newTestServer(t *testing.T, opts serverOpts) *testServer {
	t.Helper()
	log := zerolog.Nop()
	rec := metrics.New()

	var crop service.CropRecommender
	var price service.PriceEstimator
	if !opts.withoutModels {
		cr, err := inference.LoadCropRecommender(inference.CropArtifacts{
			ModelPath:    "../inference/testdata/crop_model.json",
			MinMaxPath:   "../inference/testdata/minmaxscaler.json",
			StandardPath: "../inference/testdata/standscaler.json",
		}, nil)
		require.NoError(t, err)
		pe, err := inference.LoadPriceEstimator(inference.PriceArtifacts{
			ModelPath:     "../inference/testdata/crop_price_model.json",
			MarketPath:    "../inference/testdata/le_market.json",
			CommodityPath: "../inference/testdata/le_commodity.json",
			UnitPath:      "../inference/testdata/le_unit.json",
		}, nil)
		require.NoError(t, err)
		crop, price = cr, pe
	}

	cat, err := catalog.Parse([]string{"market", "commodity", "unit"}, [][]string{
		{"#loc+market+name", "#item+name", "#item+unit"},
		{"Nairobi", "Maize", "KG"},
		{"Kisumu", "Beans", "90 KG"},
		{"Nairobi", "Beans", "KG"},
	})
	require.NoError(t, err)

	authService := service.NewAuthService(repository.NewMemoryUserRepository(), log, rec)
	cropService := service.NewCropService(crop, nil, log, rec)
	priceService := service.NewPriceService(price, cat, nil, time.Minute, log, rec)

	cfg := &config.Config{
		CORSOrigins:       []string{"*"},
		RequestTimeout:    5 * time.Second,
		RateLimitRequests: opts.rateLimit,
		RateLimitWindow:   time.Minute,
	}
	e := echo.New()
	router.Register(e, cfg, log, rec,
		handler.NewAuthHandler(authService),
		handler.NewCropHandler(cropService),
		handler.NewPriceHandler(priceService),
		handler.NewHealthHandler(nil, nil, cropService, priceService),
	)
	return &testServer{e: e}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

const registerBody = `{"email":" Jane@Example.com ","first_name":"Jane","last_name":"Wanjiru","password":"shamba123","is_farmer":true}`

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	code, body := s.do(t, http.MethodPost, "/api/register", registerBody)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/login", `{"email":"JANE@example.com","password":"shamba123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "Jane", user["first_name"])
	assert.Equal(t, true, user["is_farmer"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	code, _ := s.do(t, http.MethodPost, "/api/register", registerBody)
	require.Equal(t, http.StatusCreated, code)

	tests := []struct {
		name     string
		body     string
		code     string
		contains string
	}{
		{"duplicate differing by case and whitespace", `{"email":"jane@EXAMPLE.com  ","first_name":"J","last_name":"W","password":"x","is_farmer":false}`, "EMAIL_ALREADY_REGISTERED", "already registered"},
		{"missing first name", `{"email":"a@b.co","last_name":"W","password":"x","is_farmer":true}`, "VALIDATION_ERROR", "first_name"},
		{"missing is_farmer", `{"email":"a@b.co","first_name":"A","last_name":"W","password":"x"}`, "VALIDATION_ERROR", "is_farmer"},
		{"bad email shape", `{"email":"not-an-email","first_name":"A","last_name":"W","password":"x","is_farmer":true}`, "VALIDATION_ERROR", "email"},
		{"malformed body", `{"email":`, "VALIDATION_ERROR", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.code, body["code"])
			assert.Contains(t, body["message"], tt.contains)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	code, _ := s.do(t, http.MethodPost, "/api/register", registerBody)
	require.Equal(t, http.StatusCreated, code)

	for _, body := range []string{
		`{"email":"jane@example.com","password":"wrong"}`,
		`{"email":"ghost@example.com","password":"shamba123"}`,
		`{}`,
		`{"email":"x"}`,
		`{"email":"jane@example.com"}`,
		`{"password":"shamba123"}`,
	} {
		code, resp := s.do(t, http.MethodPost, "/api/login", body)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "invalid email or password", resp["message"], body)
		assert.Equal(t, "INVALID_CREDENTIALS", resp["code"], body)
	}
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	s := newTestServer(t, serverOpts{rateLimit: 2})
	login := `{"email":"jane@example.com","password":"wrong"}`

	code, _ := s.do(t, http.MethodPost, "/api/login", login)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(t, http.MethodPost, "/api/login", login)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/login", login)
	assert.Equal(t, http.StatusTooManyRequests, code)
	code, _ = s.do(t, http.MethodPost, "/api/register", registerBody)
	assert.Equal(t, http.StatusTooManyRequests, code)

	code, _ = s.do(t, http.MethodGet, "/api/options", "")
	assert.Equal(t, http.StatusOK, code)
}

const cropBody = `{"Nitrogen":90,"Phosphorus":42,"Potassium":43,"Temperature":20.8,"Humidity":82,"pH":6.5,"Rainfall":202.9}`

func TestRecommendCrop(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	code, body := s.do(t, http.MethodPost, "/api/recommend_crop", cropBody)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Coffee is the best crop to be cultivated right there", body["recommendation"])

	code, body = s.do(t, http.MethodPost, "/api/recommend_crop",
		`{"Nitrogen":"20","Phosphorus":"42","Potassium":43,"Temperature":"20.8","Humidity":82,"pH":"6.5","Rainfall":202.9}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Rice is the best crop to be cultivated right there", body["recommendation"])
}

func TestRecommendCrop_LabelIsKnown(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	allowed := append(inference.CropNames(), inference.UnknownCrop)

	for _, n := range []string{"0", "50", "90", "140"} {
		payload := strings.Replace(cropBody, `"Nitrogen":90`, `"Nitrogen":`+n, 1)
		code, body := s.do(t, http.MethodPost, "/api/recommend_crop", payload)
		require.Equal(t, http.StatusOK, code)
		crop := strings.TrimSuffix(body["recommendation"].(string), " is the best crop to be cultivated right there")
		assert.Contains(t, allowed, crop)
	}
}

func TestRecommendCrop_BadInput(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing pH", strings.Replace(cropBody, `"pH":6.5,`, ``, 1), "pH"},
		{"null rainfall", strings.Replace(cropBody, `"Rainfall":202.9`, `"Rainfall":null`, 1), "Rainfall"},
		{"non numeric humidity", strings.Replace(cropBody, `"Humidity":82`, `"Humidity":"wet"`, 1), "Humidity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/recommend_crop", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Contains(t, body["error"], tt.field)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		})
	}
}

func TestModelsUnavailable(t *testing.T) {
	s := newTestServer(t, serverOpts{withoutModels: true})

	code, body := s.do(t, http.MethodPost, "/api/recommend_crop", cropBody)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "MODEL_UNAVAILABLE", body["code"])

	code, body = s.do(t, http.MethodPost, "/api/predict", predictBody)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "MODEL_UNAVAILABLE", body["code"])

	code, body = s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])
}

const predictBody = `{"market":"Nairobi","commodity":"Maize","unit":"KG","quantity":10,"year":2023,"month":5}`

func TestPredict(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	code, body := s.do(t, http.MethodPost, "/api/predict", predictBody)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Predicted price for 10 KG(s) of Maize in Nairobi on 5/2023 is KES 452.50", body["message"])
	assert.Equal(t, 452.5, body["total_price"])

	code, body = s.do(t, http.MethodPost, "/api/predict",
		`{"market":"Kisumu","commodity":"Beans","unit":"90 KG","quantity":"2","year":"2023","month":"11"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["message"], "is KES 241.00")
}

func TestPredict_Errors(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	tests := []struct {
		name     string
		body     string
		code     string
		contains string
	}{
		{"unknown commodity", strings.Replace(predictBody, `"Maize"`, `"Moonbeans"`, 1), "UNKNOWN_CATEGORY", "Moonbeans"},
		{"unknown market", strings.Replace(predictBody, `"Nairobi"`, `"Atlantis"`, 1), "UNKNOWN_CATEGORY", "market"},
		{"missing month", strings.Replace(predictBody, `,"month":5`, ``, 1), "VALIDATION_ERROR", "month"},
		{"fractional quantity", strings.Replace(predictBody, `"quantity":10`, `"quantity":2.5`, 1), "VALIDATION_ERROR", "quantity"},
		{"zero quantity", strings.Replace(predictBody, `"quantity":10`, `"quantity":0`, 1), "VALIDATION_ERROR", "quantity"},
		{"month out of range", strings.Replace(predictBody, `"month":5`, `"month":13`, 1), "VALIDATION_ERROR", "month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/predict", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
			assert.Contains(t, body["error"], tt.contains)
		})
	}
}

func TestOptions(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	code, first := s.do(t, http.MethodGet, "/api/options", "")
	require.Equal(t, http.StatusOK, code)
	_, second := s.do(t, http.MethodGet, "/api/options", "")

	assert.Equal(t, first, second)
	assert.Equal(t, []any{"Beans", "Maize"}, first["crops"])
	assert.Equal(t, []any{"Kisumu", "Nairobi"}, first["markets"])
	assert.Equal(t, []any{"90 KG", "KG"}, first["units"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	code, body := s.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	s.do(t, http.MethodPost, "/api/recommend_crop", cropBody)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `farmersconnect_crop_recommendations_total{outcome="success"} 1`)
}
