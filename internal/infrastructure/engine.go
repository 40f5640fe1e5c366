package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/miorlan/openapi-reqcheck/internal/domain"
)

// EngineConfig настраивает движок валидации
type EngineConfig struct {
	// AuthenticationFunc проверяет security requirements операции.
	// Если nil, security не проверяется.
	AuthenticationFunc openapi3filter.AuthenticationFunc
}

// Engine проверяет запрос по спецификации с помощью openapi3filter
type Engine struct {
	config EngineConfig
}

// NewEngine создает новый движок валидации
func NewEngine(config EngineConfig) *Engine {
	return &Engine{config: config}
}

// Validate проверяет запрос и возвращает все найденные нарушения.
// Пустой срез означает, что запрос валиден.
func (e *Engine) Validate(ctx context.Context, req *domain.Request, spec domain.Spec) ([]*domain.Violation, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s, ok := spec.(*Spec)
	if !ok || s == nil {
		return nil, &ErrUnsupportedSpec{Type: fmt.Sprintf("%T", spec)}
	}

	httpReq, err := toHTTPRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}

	route, pathParams, err := s.router.FindRoute(httpReq)
	if err != nil {
		return []*domain.Violation{routeViolation(err)}, nil
	}

	// параметры пути от роутера фреймворка имеют приоритет
	if pathParams == nil {
		pathParams = make(map[string]string)
	}
	for k, v := range req.PathParams() {
		pathParams[k] = v
	}

	authFunc := e.config.AuthenticationFunc
	if authFunc == nil {
		authFunc = openapi3filter.NoopAuthenticationFunc
	}
	options := &openapi3filter.Options{
		MultiError:          true,
		SkipSettingDefaults: true,
		AuthenticationFunc:  authFunc,
	}

	input := &openapi3filter.RequestValidationInput{
		Request:     httpReq,
		PathParams:  pathParams,
		QueryParams: req.Query(),
		Route:       route,
		Options:     options,
	}

	violations := make([]*domain.Violation, 0)
	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		violations = collectViolations(err, violations)
	}
	return violations, nil
}

// toHTTPRequest восстанавливает *http.Request из нейтрального запроса
func toHTTPRequest(ctx context.Context, req *domain.Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), req.URL(), bytes.NewReader(req.Body()))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers() {
		httpReq.Header.Set(k, v)
	}
	if ct := req.ContentType(); ct != "" {
		httpReq.Header.Set("Content-Type", ct)
	}
	return httpReq, nil
}

func routeViolation(err error) *domain.Violation {
	code := domain.CodeNoRoute
	if errors.Is(err, routers.ErrMethodNotAllowed) {
		code = domain.CodeMethodNotAllowed
	}
	return &domain.Violation{
		Location: domain.LocationRoute,
		Code:     code,
		Message:  err.Error(),
	}
}

// collectViolations разворачивает ошибки kin-openapi в плоский список нарушений
func collectViolations(err error, out []*domain.Violation) []*domain.Violation {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			out = collectViolations(inner, out)
		}
		return out

	case *openapi3filter.RequestError:
		return append(out, requestViolations(e)...)

	case *openapi3filter.SecurityRequirementsError:
		return append(out, &domain.Violation{
			Location: domain.LocationSecurity,
			Code:     domain.CodeSecurity,
			Message:  e.Error(),
		})

	case *openapi3.SchemaError:
		return append(out, schemaViolation(e, domain.LocationBody, ""))
	}

	return append(out, &domain.Violation{
		Location: domain.LocationRequest,
		Code:     domain.CodeValidation,
		Message:  err.Error(),
	})
}

func requestViolations(reqErr *openapi3filter.RequestError) []*domain.Violation {
	location, field := domain.LocationRequest, ""
	switch {
	case reqErr.Parameter != nil:
		location, field = parameterLocation(reqErr.Parameter.In), reqErr.Parameter.Name
	case reqErr.RequestBody != nil:
		location = domain.LocationBody
	}

	var inner []error
	if multi, ok := reqErr.Err.(openapi3.MultiError); ok {
		inner = multi
	} else if reqErr.Err != nil {
		inner = []error{reqErr.Err}
	}

	if len(inner) == 0 {
		message := reqErr.Reason
		if message == "" {
			message = reqErr.Error()
		}
		return []*domain.Violation{{
			Location: location,
			Field:    field,
			Code:     domain.CodeValidation,
			Message:  message,
		}}
	}

	out := make([]*domain.Violation, 0, len(inner))
	for _, err := range inner {
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			out = append(out, schemaViolation(schemaErr, location, field))
			continue
		}
		out = append(out, &domain.Violation{
			Location: location,
			Field:    field,
			Code:     domain.CodeValidation,
			Message:  err.Error(),
		})
	}
	return out
}

func schemaViolation(schemaErr *openapi3.SchemaError, location, field string) *domain.Violation {
	if jsonPath := formatJSONPath(schemaErr.JSONPointer()); jsonPath != "" && jsonPath != "$" {
		field = jsonPath
	}
	message := schemaErr.Reason
	if message == "" {
		message = schemaErr.Error()
	}
	return &domain.Violation{
		Location: location,
		Field:    field,
		Code:     domain.CodeSchema,
		Message:  message,
	}
}

func parameterLocation(in string) string {
	switch in {
	case openapi3.ParameterInPath:
		return domain.LocationPath
	case openapi3.ParameterInQuery:
		return domain.LocationQuery
	case openapi3.ParameterInHeader:
		return domain.LocationHeader
	case openapi3.ParameterInCookie:
		return domain.LocationCookie
	default:
		return domain.LocationRequest
	}
}

// formatJSONPath преобразует ["items", "0", "name"] в $.items[0].name
func formatJSONPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("$")
	for _, part := range parts {
		if part == "" {
			continue
		}
		if isNumeric(part) {
			sb.WriteString("[" + part + "]")
		} else {
			sb.WriteString("." + part)
		}
	}
	return sb.String()
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
