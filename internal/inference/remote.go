package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// RemoteModel calls an estimator hosted by a model server:
//
//	POST {base}/predict/{name}  {"features": [...]}  ->  {"prediction": n}
//
// Calls go through a circuit breaker so a dead model server fails fast.
type RemoteModel struct {
	url    string
	name   string
	client *http.Client
	cb     *gobreaker.CircuitBreaker[float64]
}

type remoteRequest struct {
	Features []float64 `json:"features"`
}

type remoteResponse struct {
	Prediction *float64 `json:"prediction"`
	Error      string   `json:"error,omitempty"`
}

// NewRemoteModel builds a client for the model called name on the server at
// baseURL.
func NewRemoteModel(baseURL, name string, timeout time.Duration, log zerolog.Logger) (*RemoteModel, error) {
	if baseURL == "" {
		return nil, errors.New("model server URL is empty")
	}
	cbName := "model-server-" + name
	cb := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("model server breaker state change")
		},
	})
	return &RemoteModel{
		url:    strings.TrimRight(baseURL, "/") + "/predict/" + name,
		name:   name,
		client: &http.Client{Timeout: timeout},
		cb:     cb,
	}, nil
}

// PredictValue returns the raw prediction.
func (m *RemoteModel) PredictValue(ctx context.Context, x []float64) (float64, error) {
	return m.cb.Execute(func() (float64, error) {
		return m.call(ctx, x)
	})
}

// PredictClass returns the prediction as a class id. Non-integral answers
// are rejected rather than rounded.
func (m *RemoteModel) PredictClass(ctx context.Context, x []float64) (int, error) {
	v, err := m.PredictValue(ctx, x)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("model %s returned non-integral class %v", m.name, v)
	}
	return int(v), nil
}

func (m *RemoteModel) call(ctx context.Context, x []float64) (float64, error) {
	body, err := json.Marshal(remoteRequest{Features: x})
	if err != nil {
		return 0, fmt.Errorf("marshal features: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call model %s: %w", m.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read model %s response: %w", m.name, err)
	}
	var out remoteResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("decode model %s response: %w", m.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model %s: status %d: %s", m.name, resp.StatusCode, out.Error)
	}
	if out.Prediction == nil {
		return 0, fmt.Errorf("model %s: response without prediction", m.name)
	}
	return *out.Prediction, nil
}
