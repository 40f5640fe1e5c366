package usecase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
)

// mockSource is a mock implementation of domain.Source
type mockSource struct {
	method     string
	rawURL     string
	header     http.Header
	pathParams map[string]string
	body       []byte
	bodyErr    error
	bodyCalls  int
}

func (m *mockSource) Method() string { return m.method }

func (m *mockSource) URL() *url.URL {
	u, _ := url.Parse(m.rawURL)
	return u
}

func (m *mockSource) Header() http.Header {
	if m.header == nil {
		return http.Header{}
	}
	return m.header.Clone()
}

func (m *mockSource) PathParams() map[string]string { return m.pathParams }

func (m *mockSource) Body(ctx context.Context) ([]byte, error) {
	m.bodyCalls++
	return m.body, m.bodyErr
}

// mockLimitedSource is a mock implementation of domain.LimitedSource
type mockLimitedSource struct {
	*mockSource
	limits []int64
}

func (m *mockLimitedSource) LimitedBody(ctx context.Context, limit int64) ([]byte, error) {
	m.limits = append(m.limits, limit)
	return m.body, m.bodyErr
}

// mockSpec is a mock implementation of domain.Spec
type mockSpec struct{}

func (mockSpec) Title() string   { return "greet_api" }
func (mockSpec) Version() string { return "1.0.0" }

// mockEngine is a mock implementation of domain.Engine
type mockEngine struct {
	violations []*domain.Violation
	err        error
	requests   []*domain.Request
}

func (m *mockEngine) Validate(ctx context.Context, req *domain.Request, spec domain.Spec) ([]*domain.Violation, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return append([]*domain.Violation{}, m.violations...), nil
}
