package reqcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/miorlan/openapi-reqcheck/internal/infrastructure"
)

// RequestIDHeader carries the correlation id of a rejected request
const RequestIDHeader = "X-Request-ID"

// ErrorResponse is the body written for rejected requests (RFC 7807 Problem Details)
type ErrorResponse struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []*Violation `json:"errors"`
}

func newErrorResponse(status int, title string, violations []*Violation) *ErrorResponse {
	detail := ""
	switch len(violations) {
	case 0:
	case 1:
		detail = violations[0].Message
	default:
		detail = fmt.Sprintf("%d validation errors", len(violations))
	}
	if violations == nil {
		violations = []*Violation{}
	}
	return &ErrorResponse{
		Type:   "validation_error",
		Title:  title,
		Status: status,
		Detail: detail,
		Errors: violations,
	}
}

func (e *ErrorResponse) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Middleware returns net/http middleware that validates every request
// against spec. Invalid requests are answered with 400 and never reach
// next; valid requests are passed on with their body intact. Bodies that
// cannot be read get 400 (413 when over WithMaxBodySize). Any other failure
// is a server problem and gets 500.
//
// Example:
//
//	spec, _ := reqcheck.LoadSpec(ctx, "greet_api.json")
//	http.ListenAndServe(":8080", reqcheck.Middleware(spec)(mux))
func Middleware(spec Spec, opts ...Option) func(http.Handler) http.Handler {
	v := New(opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			src := infrastructure.NewHTTPSource(r, nil, v.config.MaxBodySize)

			result, err := v.ValidateWithRaise(r.Context(), src, spec, false)
			if err != nil {
				var convErr *ConversionError
				if !errors.As(err, &convErr) {
					v.fail(w, r, err)
					return
				}

				status := http.StatusBadRequest
				var tooLarge *ErrBodyTooLarge
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				v.reject(w, r, newErrorResponse(status, "Request Could Not Be Read", []*Violation{{
					Location: domain.LocationRequest,
					Code:     "read_error",
					Message:  err.Error(),
				}}))
				return
			}

			if !result.Valid() {
				v.reject(w, r, newErrorResponse(http.StatusBadRequest, "Request Validation Failed", result.Errors))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	return id
}

func (v *Validator) reject(w http.ResponseWriter, r *http.Request, resp *ErrorResponse) {
	id := requestID(w, r)

	for _, violation := range resp.Errors {
		v.config.Logger.Warn().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("location", violation.Location).
			Str("field", violation.Field).
			Str("code", violation.Code).
			Msg(violation.Message)
	}

	resp.write(w)
}

// fail answers errors that are not the client's fault. The cause is only logged.
func (v *Validator) fail(w http.ResponseWriter, r *http.Request, err error) {
	id := requestID(w, r)

	v.config.Logger.Error().
		Err(err).
		Str("request_id", id).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request could not be validated")

	resp := newErrorResponse(http.StatusInternalServerError, "Request Could Not Be Validated", nil)
	resp.Type = "internal_error"
	resp.write(w)
}
