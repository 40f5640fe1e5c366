// Package reqcheck validates HTTP requests against OpenAPI 3 specifications.
//
// A framework request is first converted into a framework-neutral Request
// (the body is drained exactly once), then checked by kin-openapi's
// openapi3filter against a pre-loaded Spec. Violations are either raised as a
// *ValidationError or collected into Result.Errors, depending on
// WithRaiseOnError.
package reqcheck

import (
	"context"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/miorlan/openapi-reqcheck/internal/domain"
	"github.com/miorlan/openapi-reqcheck/internal/infrastructure"
	"github.com/miorlan/openapi-reqcheck/internal/usecase"
	"github.com/rs/zerolog"
)

type (
	// Request is the framework-independent request handed to the validation engine
	Request = domain.Request
	// Source is implemented by framework requests that can be validated
	Source = domain.Source
	// Spec is a loaded, read-only OpenAPI document
	Spec = domain.Spec
	// Result holds the violations found when errors are not raised
	Result = domain.Result
	// Violation describes one failed constraint
	Violation = domain.Violation
	// ValidationError is returned when errors are raised
	ValidationError = domain.ValidationError
	// ConversionError is returned when a request body could not be read
	ConversionError = domain.ConversionError
	// ErrBodyTooLarge is wrapped in a ConversionError when the body exceeds WithMaxBodySize
	ErrBodyTooLarge = domain.ErrBodyTooLarge
)

// Option represents a configuration option for the validator
type Option func(*Config)

// Config holds the configuration for the validator
type Config struct {
	RaiseOnError       bool
	MaxBodySize        int64
	MaxFileSize        int64
	HTTPTimeout        time.Duration
	IgnoreServers      bool
	AuthenticationFunc openapi3filter.AuthenticationFunc
	Logger             zerolog.Logger
}

// WithRaiseOnError makes Validate return a *ValidationError instead of a Result with errors
func WithRaiseOnError(raise bool) Option {
	return func(c *Config) {
		c.RaiseOnError = raise
	}
}

// WithMaxBodySize sets the maximum request body size in bytes (0 = unlimited).
// Sources from NewHTTPSource stop reading once the limit is exceeded.
func WithMaxBodySize(size int64) Option {
	return func(c *Config) {
		c.MaxBodySize = size
	}
}

// WithMaxFileSize sets the maximum spec file size in bytes (0 = unlimited)
func WithMaxFileSize(size int64) Option {
	return func(c *Config) {
		c.MaxFileSize = size
	}
}

// WithHTTPTimeout sets the timeout for fetching specs over HTTP
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithIgnoreServers matches requests by path and method only, ignoring the
// servers section of loaded specs
func WithIgnoreServers(ignore bool) Option {
	return func(c *Config) {
		c.IgnoreServers = ignore
	}
}

// WithAuthenticationFunc enables validation of security requirements.
// Without it security requirements are not checked.
func WithAuthenticationFunc(fn openapi3filter.AuthenticationFunc) Option {
	return func(c *Config) {
		c.AuthenticationFunc = fn
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		RaiseOnError: false,
		MaxBodySize:  10 << 20,
		MaxFileSize:  0, // unlimited
		HTTPTimeout:  30 * time.Second,
		Logger:       zerolog.Nop(),
	}
}

// Validator converts and validates requests. It holds no per-request state
// and is safe for concurrent use.
type Validator struct {
	converter  *usecase.ConvertUseCase
	useCase    *usecase.ValidateUseCase
	specLoader domain.SpecLoader
	config     *Config
}

// New creates a new Validator instance
func New(opts ...Option) *Validator {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	fileLoader := infrastructure.NewFileLoaderWithTimeout(config.HTTPTimeout)
	specLoader := infrastructure.NewSpecLoader(fileLoader, infrastructure.SpecLoaderConfig{
		MaxFileSize:   config.MaxFileSize,
		IgnoreServers: config.IgnoreServers,
	})
	engine := infrastructure.NewEngine(infrastructure.EngineConfig{
		AuthenticationFunc: config.AuthenticationFunc,
	})
	converter := usecase.NewConvertUseCase(usecase.ConvertConfig{MaxBodySize: config.MaxBodySize}, config.Logger)

	return &Validator{
		converter:  converter,
		useCase:    usecase.NewValidateUseCase(converter, engine, config.Logger),
		specLoader: specLoader,
		config:     config,
	}
}

// LoadSpec loads and validates an OpenAPI document from a file path or http(s) URL
//
// Example:
//
//	v := reqcheck.New()
//	spec, err := v.LoadSpec(ctx, "greet_api.json")
func (v *Validator) LoadSpec(ctx context.Context, path string) (Spec, error) {
	return v.specLoader.Load(ctx, path)
}

// Convert drains the source body and returns the neutral Request
func (v *Validator) Convert(ctx context.Context, src Source) (*Request, error) {
	return v.converter.Execute(ctx, src)
}

// Validate checks src against spec
//
// Example:
//
//	v := reqcheck.New(reqcheck.WithRaiseOnError(true))
//	_, err := v.Validate(ctx, reqcheck.NewHTTPSource(r, nil), spec)
func (v *Validator) Validate(ctx context.Context, src Source, spec Spec) (*Result, error) {
	return v.useCase.Execute(ctx, src, spec, usecase.Config{RaiseOnError: v.config.RaiseOnError})
}

// ValidateWithRaise is Validate with the raise flag chosen per call
func (v *Validator) ValidateWithRaise(ctx context.Context, src Source, spec Spec, raiseOnError bool) (*Result, error) {
	return v.useCase.Execute(ctx, src, spec, usecase.Config{RaiseOnError: raiseOnError})
}

// NewHTTPSource adapts a net/http request. pathParams are the parameters
// extracted by the application's router and may be nil. The body is read
// with the MaxBodySize of the Validator it is passed to.
func NewHTTPSource(r *http.Request, pathParams map[string]string) Source {
	return infrastructure.NewHTTPSource(r, pathParams, 0)
}

// LoadSpec is a convenience function that loads a spec with the default configuration
func LoadSpec(ctx context.Context, path string) (Spec, error) {
	return New().LoadSpec(ctx, path)
}

// ConvertRequest is a convenience function that converts src with the default configuration
func ConvertRequest(ctx context.Context, src Source) (*Request, error) {
	return New().Convert(ctx, src)
}

// ValidateRequest is a convenience function that validates src against spec
//
// Example:
//
//	result, err := reqcheck.ValidateRequest(ctx, src, spec, false)
//	if err == nil && !result.Valid() {
//		// handle result.Errors
//	}
func ValidateRequest(ctx context.Context, src Source, spec Spec, raiseOnError bool) (*Result, error) {
	return New().ValidateWithRaise(ctx, src, spec, raiseOnError)
}
