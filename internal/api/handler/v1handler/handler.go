// Package v1handler implements the version 1 HTTP API on top of the
// calculator service. Bodies are encoded and decoded with jx.
package v1handler

import (
	"context"
	"net/http"
	"numerology/internal/calculator"
	"numerology/pkg/logger"
	"numerology/pkg/serrors"
	"time"

	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const (
	meterName = "numerology/internal/api/handler/v1handler"

	// DefaultMaxBodyBytes is used when no body limit is configured.
	DefaultMaxBodyBytes = 1 << 20
)

// Deps are the collaborators the handlers call into.
type Deps struct {
	Calculator calculator.Calculator
	// MeterProvider receives request metrics. A no-op provider is used when nil.
	MeterProvider metric.MeterProvider
}

// Option configures a Handler.
type Option func(h *Handler)

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) Option {
	return func(h *Handler) { h.version = v }
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
// Errors are rendered by Handler.NewError.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type Handler struct {
	deps         Deps
	maxBodyBytes int64
	version      string

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func New(deps Deps, opts ...Option) *Handler {
	mp := deps.MeterProvider
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(meterName)

	h := &Handler{deps: deps, maxBodyBytes: DefaultMaxBodyBytes, version: "dev"}
	for _, opt := range opts {
		opt(h)
	}

	// instrument creation only fails on invalid names
	h.requests, _ = meter.Int64Counter("numerology_http_requests",
		metric.WithDescription("Number of handled API requests."))
	h.duration, _ = meter.Float64Histogram("numerology_http_request_duration",
		metric.WithDescription("Time spent handling API requests."),
		metric.WithUnit("s"))

	return h
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string
	Message string
}

// Encode writes the response as a JSON object.
func (e ErrorResponse) Encode(enc *jx.Encoder) {
	enc.ObjStart()
	enc.FieldStart("code")
	enc.Str(e.Code)
	enc.FieldStart("message")
	enc.Str(e.Message)
	enc.ObjEnd()
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

// NewError maps err onto a status code and a client safe message. Internal
// errors never leak their text.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	res := &ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response:   ErrorResponse{Code: kind.Error(), Message: serrors.MessageOf(err)},
	}

	var fallback string
	switch kind {
	case serrors.ErrBadRequest:
		res.StatusCode, fallback = http.StatusBadRequest, "bad request"
	case serrors.ErrNotFound:
		res.StatusCode, fallback = http.StatusNotFound, "resource not found"
	case serrors.ErrUnauthorized:
		res.StatusCode, fallback = http.StatusUnauthorized, "unauthorized"
	case serrors.ErrTimeout:
		res.StatusCode, fallback = http.StatusGatewayTimeout, "request timed out"
	default:
		res.Response.Code = serrors.ErrInternal.Error()
		res.Response.Message = "internal error"
		logger.Error(ctx, "request failed", zap.Error(err))

		return res
	}
	if res.Response.Message == "" {
		res.Response.Message = fallback
	}
	logger.Debug(ctx, "request rejected", zap.Int("status_code", res.StatusCode), zap.Error(err))

	return res
}

// Route adapts fn to http.Handler, rendering its error and recording request
// metrics under the operation name op.
func (h *Handler) Route(op string, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := http.StatusOK
		if err := fn(w, r); err != nil {
			res := h.NewError(r.Context(), err)
			status = res.StatusCode
			if status == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", `Bearer realm="numerology"`)
			}
			writeJSON(w, status, res.Response.Encode)
		}

		attrs := metric.WithAttributes(attribute.String("operation", op), attribute.Int("status_code", status))
		h.requests.Add(r.Context(), 1, attrs)
		h.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}

// Register mounts the API routes on mux. Everything under /v1 goes through sec.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	mux.Handle("GET /health", h.Route("health", h.Health))
	mux.Handle("POST /v1/profiles", h.Route("create_profile", sec.Authenticate(h.CreateProfile)))
	mux.Handle("POST /v1/profiles/batch", h.Route("create_profiles_batch", sec.Authenticate(h.CreateProfilesBatch)))
	mux.Handle("POST /v1/metrics/{metric}", h.Route("compute_metric", sec.Authenticate(h.ComputeMetric)))
	mux.Handle("GET /v1/tools", h.Route("list_tools", sec.Authenticate(h.ListTools)))
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	encode(e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
