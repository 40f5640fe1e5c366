package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"sync"
)

// HTTPSource адаптирует *http.Request к domain.Source.
// Тело читается один раз и возвращается в запрос, чтобы обработчик
// после валидации мог прочитать его снова.
type HTTPSource struct {
	req         *http.Request
	pathParams  map[string]string
	maxBodySize int64

	once sync.Once
	body []byte
	err  error
}

// NewHTTPSource создает источник из запроса и параметров пути,
// найденных роутером приложения (может быть nil)
func NewHTTPSource(r *http.Request, pathParams map[string]string, maxBodySize int64) *HTTPSource {
	return &HTTPSource{
		req:         r,
		pathParams:  maps.Clone(pathParams),
		maxBodySize: maxBodySize,
	}
}

func (s *HTTPSource) Method() string {
	return s.req.Method
}

// URL возвращает полный URL; для серверных запросов схема и хост
// восстанавливаются из TLS и заголовка Host
func (s *HTTPSource) URL() *url.URL {
	u := *s.req.URL
	if u.Host == "" {
		u.Host = s.req.Host
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "http"
		if s.req.TLS != nil {
			u.Scheme = "https"
		}
	}
	return &u
}

func (s *HTTPSource) Header() http.Header {
	return s.req.Header.Clone()
}

func (s *HTTPSource) PathParams() map[string]string {
	return maps.Clone(s.pathParams)
}

// Body читает тело запроса. Повторные вызовы возвращают тот же результат.
func (s *HTTPSource) Body(ctx context.Context) ([]byte, error) {
	return s.LimitedBody(ctx, 0)
}

// LimitedBody читает тело, останавливаясь сразу после превышения limit байт.
// Действует меньший из лимитов: переданный и заданный в NewHTTPSource.
// Лимит первого вызова фиксируется вместе с результатом.
func (s *HTTPSource) LimitedBody(ctx context.Context, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxBodySize > 0 && (limit <= 0 || s.maxBodySize < limit) {
		limit = s.maxBodySize
	}
	s.once.Do(func() { s.drain(limit) })
	return s.body, s.err
}

func (s *HTTPSource) drain(limit int64) {
	if s.req.Body == nil || s.req.Body == http.NoBody {
		return
	}

	original := s.req.Body
	reader := io.Reader(original)
	if limit > 0 {
		reader = io.LimitReader(original, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		_ = original.Close()
		s.req.Body = io.NopCloser(bytes.NewReader(data))
		s.err = fmt.Errorf("failed to read body: %w", err)
		return
	}
	if limit > 0 && int64(len(data)) > limit {
		// непрочитанный остаток остается доступен обработчику
		s.req.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(data), original), Closer: original}
		s.err = &ErrBodyTooLarge{Limit: limit}
		return
	}
	_ = original.Close()
	s.req.Body = io.NopCloser(bytes.NewReader(data))
	s.body = data
}

type replayBody struct {
	io.Reader
	io.Closer
}
