package domain

import (
	"context"
	"net/http"
	"net/url"
)

// Source is the capability a web framework request has to expose so that it
// can be converted into a Request.
type Source interface {
	Method() string
	URL() *url.URL
	Header() http.Header
	PathParams() map[string]string
	// Body returns the complete request body. It is the only blocking call.
	Body(ctx context.Context) ([]byte, error)
}

// LimitedSource is a Source that can stop reading the body as soon as it
// grows past limit bytes.
type LimitedSource interface {
	Source
	LimitedBody(ctx context.Context, limit int64) ([]byte, error)
}
