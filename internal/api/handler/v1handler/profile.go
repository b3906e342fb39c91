package v1handler

import (
	"net/http"
	"numerology/pkg/domain"
	"time"

	"github.com/go-faster/jx"
)

// Health reports liveness. It never requires authentication.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("status")
		e.Str("healthy")
		e.FieldStart("version")
		e.Str(h.version)
		e.FieldStart("timestamp")
		e.Str(time.Now().UTC().Format(time.RFC3339))
		e.ObjEnd()
	})

	return nil
}

// CreateProfile computes the full profile for the request body.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) error {
	var req domain.ProfileRequest
	if err := h.readBody(w, r, func(d *jx.Decoder) error { return decodeProfileRequest(d, &req) }); err != nil {
		return err
	}

	profile, err := h.deps.Calculator.Profile(r.Context(), req)
	if err != nil {
		return err //nolint: wrapcheck
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeProfile(e, profile) })

	return nil
}

// CreateProfilesBatch computes several profiles. The response is 200 as long
// as the batch itself is acceptable; failed entries carry their own error.
func (h *Handler) CreateProfilesBatch(w http.ResponseWriter, r *http.Request) error {
	var reqs []domain.ProfileRequest
	if err := h.readBody(w, r, func(d *jx.Decoder) (err error) {
		reqs, err = decodeBatchRequest(d)

		return err
	}); err != nil {
		return err
	}

	items, err := h.deps.Calculator.Batch(r.Context(), reqs)
	if err != nil {
		return err //nolint: wrapcheck
	}

	ctx := r.Context()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeBatch(e, items, func(err error) ErrorResponse { return h.NewError(ctx, err).Response })
	})

	return nil
}

// ComputeMetric computes the single metric named in the path.
func (h *Handler) ComputeMetric(w http.ResponseWriter, r *http.Request) error {
	var req domain.ProfileRequest
	if err := h.readBody(w, r, func(d *jx.Decoder) error { return decodeProfileRequest(d, &req) }); err != nil {
		return err
	}

	value, err := h.deps.Calculator.Metric(r.Context(), r.PathValue("metric"), req)
	if err != nil {
		return err //nolint: wrapcheck
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeMetric(e, value) })

	return nil
}

// ListTools returns the calculator catalog.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) error {
	tools := h.deps.Calculator.Tools()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeTools(e, tools) })

	return nil
}
