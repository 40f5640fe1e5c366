package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/miorlan/openapi-reqcheck/internal/domain"
)

// RequestFixture описывает HTTP запрос в YAML или JSON файле.
// Body может быть строкой (передается как есть) или объектом (кодируется в JSON).
type RequestFixture struct {
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	PathParams map[string]string `json:"path_params,omitempty" yaml:"path_params,omitempty"`
	Body       interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
}

// FixtureSource реализует domain.Source поверх RequestFixture
type FixtureSource struct {
	method     string
	url        *url.URL
	header     http.Header
	pathParams map[string]string
	body       []byte
}

// LoadFixture загружает и разбирает фикстуру запроса
func LoadFixture(ctx context.Context, loader domain.FileLoader, parser domain.Parser, path string) (*FixtureSource, error) {
	data, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load request fixture: %w", err)
	}

	var fixture RequestFixture
	if err := parser.Unmarshal(data, &fixture, domain.DetectFormat(path)); err != nil {
		return nil, fmt.Errorf("failed to parse request fixture: %w", err)
	}

	return NewFixtureSource(fixture)
}

// NewFixtureSource проверяет фикстуру и строит из нее источник
func NewFixtureSource(f RequestFixture) (*FixtureSource, error) {
	if f.URL == "" {
		return nil, fmt.Errorf("request fixture: url is required")
	}
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, fmt.Errorf("request fixture: invalid url: %w", err)
	}

	method := strings.ToUpper(f.Method)
	if method == "" {
		method = http.MethodGet
	}

	header := make(http.Header, len(f.Headers))
	for k, v := range f.Headers {
		header.Set(k, v)
	}

	var body []byte
	switch b := f.Body.(type) {
	case nil:
	case string:
		body = []byte(b)
	default:
		body, err = json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("request fixture: failed to encode body: %w", err)
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
	}

	return &FixtureSource{
		method:     method,
		url:        u,
		header:     header,
		pathParams: maps.Clone(f.PathParams),
		body:       body,
	}, nil
}

func (s *FixtureSource) Method() string { return s.method }

func (s *FixtureSource) URL() *url.URL {
	u := *s.url
	return &u
}

func (s *FixtureSource) Header() http.Header { return s.header.Clone() }

func (s *FixtureSource) PathParams() map[string]string { return maps.Clone(s.pathParams) }

func (s *FixtureSource) Body(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.body, nil
}
