package v1handler

import (
	"bytes"
	"io"
	"net/http"
	"numerology/internal/calculator"
	"numerology/pkg/domain"
	"numerology/pkg/serrors"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// readBody reads at most maxBodyBytes and hands a decoder over the body to fn.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request, fn func(d *jx.Decoder) error) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serrors.With(serrors.ErrBadRequest, "request body is larger than %d bytes", tooLarge.Limit)
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return serrors.With(serrors.ErrBadRequest, "request body is empty")
	}

	if err := fn(jx.DecodeBytes(body)); err != nil {
		return serrors.With(serrors.ErrBadRequest, "invalid request body: %v", err)
	}

	return nil
}

func decodeProfileRequest(d *jx.Decoder, req *domain.ProfileRequest) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "name":
			req.Name, err = d.Str()
		case "day":
			req.Day, err = d.Int()
		case "month":
			req.Month, err = d.Int()
		case "year":
			req.Year, err = d.Int()
		case "system":
			if d.Next() == jx.Null {
				return d.Null()
			}
			req.System, err = d.Str()
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		return nil
	})
}

func decodeBatchRequest(d *jx.Decoder) ([]domain.ProfileRequest, error) {
	var reqs []domain.ProfileRequest
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "profiles" {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			var req domain.ProfileRequest
			if err := decodeProfileRequest(d, &req); err != nil {
				return errors.Wrapf(err, "profiles[%d]", len(reqs))
			}
			reqs = append(reqs, req)

			return nil
		})
	})

	return reqs, err //nolint: wrapcheck
}

func encodeInts(e *jx.Encoder, values []int) {
	e.ArrStart()
	for _, v := range values {
		e.Int(v)
	}
	e.ArrEnd()
}

func encodeOptInt(e *jx.Encoder, v *int) {
	if v == nil {
		e.Null()

		return
	}
	e.Int(*v)
}

func encodeNumbers(e *jx.Encoder, n domain.Numbers) {
	e.ObjStart()
	e.FieldStart("life_path")
	e.Int(n.LifePath)
	e.FieldStart("expression")
	e.Int(n.Expression)
	e.FieldStart("soul_urge")
	e.Int(n.SoulUrge)
	e.FieldStart("personality")
	e.Int(n.Personality)
	e.FieldStart("birthday_number")
	e.Int(n.BirthdayNumber)
	e.FieldStart("maturity_number")
	e.Int(n.MaturityNumber)
	e.FieldStart("hidden_passion")
	e.Int(n.HiddenPassion)
	e.FieldStart("subconscious_self")
	e.Int(n.SubconsciousSelf)
	e.FieldStart("karmic_debt")
	encodeOptInt(e, n.KarmicDebt)
	e.FieldStart("master_numbers")
	encodeInts(e, n.MasterNumbers)
	e.ObjEnd()
}

func encodeProfile(e *jx.Encoder, p *domain.Profile) {
	e.ObjStart()
	e.FieldStart("request_id")
	e.Str(p.RequestID.String())
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("system")
	e.Str(p.System)
	e.FieldStart("profile")
	encodeNumbers(e, p.Numbers)
	e.FieldStart("timestamp")
	e.Str(p.CreatedAt.Format(time.RFC3339Nano))
	e.FieldStart("execution_time_ms")
	e.Float64(float64(p.ExecutionTime.Microseconds()) / 1000)
	e.ObjEnd()
}

func encodeBatch(e *jx.Encoder, items []domain.BatchItem, errorOf func(error) ErrorResponse) {
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}

	e.ObjStart()
	e.FieldStart("total")
	e.Int(len(items))
	e.FieldStart("successful")
	e.Int(len(items) - failed)
	e.FieldStart("failed")
	e.Int(failed)
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("index")
		e.Int(item.Index)
		if item.Err != nil {
			e.FieldStart("error")
			errorOf(item.Err).Encode(e)
		} else {
			e.FieldStart("profile")
			encodeProfile(e, item.Profile)
		}
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeMetric(e *jx.Encoder, v *domain.MetricValue) {
	e.ObjStart()
	e.FieldStart("metric")
	e.Str(v.Metric)
	if v.System != "" {
		e.FieldStart("system")
		e.Str(v.System)
	}
	e.FieldStart("value")
	encodeOptInt(e, v.Value)
	if v.Values != nil {
		e.FieldStart("values")
		encodeInts(e, v.Values)
	}
	e.FieldStart("is_master_number")
	e.Bool(v.IsMaster)
	if v.RawSum != nil {
		e.FieldStart("raw_sum")
		e.Int(*v.RawSum)
	}
	e.ObjEnd()
}

func encodeTools(e *jx.Encoder, tools []calculator.Tool) {
	e.ObjStart()
	e.FieldStart("tools")
	e.ArrStart()
	for _, t := range tools {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(t.Name)
		e.FieldStart("description")
		e.Str(t.Description)
		e.FieldStart("inputs")
		e.ArrStart()
		for _, in := range t.Inputs {
			e.Str(in)
		}
		e.ArrEnd()
		e.FieldStart("uses_system")
		e.Bool(t.UsesSystem)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}
