package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/instrumentation"
	"github.com/Alias1177/CryptoPredictor/internal/model"
)

type fakePredictor struct {
	spot     *model.SpotPrice
	analysis *model.Analysis
	err      error
}

func (f *fakePredictor) GetSpotPrice(ctx context.Context) (*model.SpotPrice, error) {
	return f.spot, f.err
}

func (f *fakePredictor) GetAnalysis(ctx context.Context) (*model.Analysis, error) {
	return f.analysis, f.err
}

func serve(t *testing.T, p Predictor, path string) *httptest.ResponseRecorder {
	t.Helper()
	reg := prometheus.NewRegistry()
	instrumentation.NewMetrics(reg).ObserveSignal("reddit", true)

	router := NewRouter(p, Options{RequestTimeout: time.Second, Gatherer: reg})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPrice(t *testing.T) {
	p := &fakePredictor{spot: &model.SpotPrice{Price: 50000.5, Timestamp: 1, Source: "kraken"}}
	rec := serve(t, p, "/v1/price")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var got model.SpotPrice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, *p.spot, got)
}

func TestAnalysis(t *testing.T) {
	p := &fakePredictor{analysis: &model.Analysis{
		ID:           "abc",
		CurrentPrice: 42000,
		Predictions:  []model.Prediction{{Timeframe: "1H", Direction: model.DirectionUp, Confidence: 62.0}},
	}}
	rec := serve(t, p, "/v1/analysis")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "abc", got["id"])
	require.Len(t, got["predictions"], 1)
	require.Contains(t, got, "onchain_metrics")
	require.Contains(t, got, "market_hours")
}

func TestExhaustedIsServiceUnavailable(t *testing.T) {
	exhausted := &fallback.ExhaustedError{Chain: "price"}
	p := &fakePredictor{err: fmt.Errorf("fetching spot price: %w", exhausted)}

	for _, path := range []string{"/v1/price", "/v1/analysis"} {
		rec := serve(t, p, path)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "data_unavailable", resp.Error)
		require.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
		require.NotContains(t, rec.Body.String(), `"price"`)
	}
}

func TestOtherErrors(t *testing.T) {
	rec := serve(t, &fakePredictor{err: context.DeadlineExceeded}, "/v1/price")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)

	rec = serve(t, &fakePredictor{err: errors.New("boom")}, "/v1/price")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	rec := serve(t, &fakePredictor{}, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = serve(t, &fakePredictor{}, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "predictor_signal_fetches_total")
}

func TestRequestIDEchoed(t *testing.T) {
	router := NewRouter(&fakePredictor{}, Options{Gatherer: prometheus.NewRegistry()})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}
