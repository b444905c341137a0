// Package server exposes the predictor over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// Predictor is the pipeline served by the API.
type Predictor interface {
	GetSpotPrice(ctx context.Context) (*model.SpotPrice, error)
	GetAnalysis(ctx context.Context) (*model.Analysis, error)
}

// ErrorResponse is the JSON body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Options configures the router.
type Options struct {
	// RequestTimeout bounds a whole request, including every fallback attempt
	RequestTimeout time.Duration
	// Gatherer backs /metrics; nil serves the default registry
	Gatherer prometheus.Gatherer
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(p Predictor, opts Options) http.Handler {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	h := &handler{predictor: p}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(Logging)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))
		r.Get("/price", h.price)
		r.Get("/analysis", h.analysis)
	})

	return r
}

type handler struct {
	predictor Predictor
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handler) price(w http.ResponseWriter, r *http.Request) {
	spot, err := h.predictor.GetSpotPrice(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *handler) analysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.predictor.GetAnalysis(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// fail maps pipeline errors to status codes. An exhausted chain means the
// upstream data is unavailable right now, not that the request was wrong.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := GetRequestID(r.Context())
	resp := ErrorResponse{RequestID: reqID}
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, fallback.ErrAllSourcesExhausted):
		status = http.StatusServiceUnavailable
		resp.Error = "data_unavailable"
		resp.Message = "no upstream source returned usable data"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		resp.Error = "timeout"
		resp.Message = "request timed out"
	default:
		resp.Error = "internal"
		resp.Message = "internal error"
	}

	log.Error().Err(err).Str("component", "server").Str("request_id", reqID).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("component", "server").Msg("json encode failed")
	}
}
