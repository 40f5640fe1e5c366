package domain

import "fmt"

// Locations of a violation inside a request
const (
	LocationPath     = "path"
	LocationQuery    = "query"
	LocationHeader   = "header"
	LocationCookie   = "cookie"
	LocationBody     = "body"
	LocationRequest  = "request"
	LocationSecurity = "security"
	LocationRoute    = "route"
)

// Machine-readable violation codes
const (
	CodeNoRoute          = "no_route"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeSchema           = "schema"
	CodeValidation       = "openapi_validation"
	CodeSecurity         = "security"
)

// Violation describes a single OpenAPI constraint the request failed.
type Violation struct {
	Location string `json:"location" yaml:"location"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`
}

func (v *Violation) Error() string {
	if v.Field != "" {
		return fmt.Sprintf("%s.%s: %s", v.Location, v.Field, v.Message)
	}
	if v.Location != "" {
		return fmt.Sprintf("%s: %s", v.Location, v.Message)
	}
	return v.Message
}

// ValidationError is returned instead of a Result when the caller asked for
// violations to be raised.
type ValidationError struct {
	Violations []*Violation
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "request validation failed"
	case 1:
		return fmt.Sprintf("request validation failed: %s", e.Violations[0])
	}
	return fmt.Sprintf("request validation failed: %s (and %d more)", e.Violations[0], len(e.Violations)-1)
}

// Unwrap exposes every violation to errors.As
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// ConversionError reports that a framework request could not be turned into
// a Request. It never carries violations.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to read request body: %v", e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ErrBodyTooLarge is returned when a request body exceeds the configured limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds maximum allowed size %d", e.Limit)
}
