package domain

import (
	"maps"
	"net/url"
	"slices"
)

// Request is a framework-independent HTTP request ready for OpenAPI validation.
// A Request never changes after construction: NewRequest copies its inputs
// and every accessor returns a copy.
type Request struct {
	method      string
	fullURL     string
	headers     map[string]string
	pathParams  map[string]string
	queryParams map[string][]string
	body        []byte
	contentType string
}

// RequestParams carries the fields used to build a Request
type RequestParams struct {
	Method      string
	URL         string
	Headers     map[string]string
	PathParams  map[string]string
	QueryParams map[string][]string
	Body        []byte
	ContentType string
}

// NewRequest builds an immutable Request from p
func NewRequest(p RequestParams) *Request {
	return &Request{
		method:      p.Method,
		fullURL:     p.URL,
		headers:     cloneOrEmpty(p.Headers),
		pathParams:  cloneOrEmpty(p.PathParams),
		queryParams: cloneQuery(p.QueryParams),
		body:        slices.Clone(p.Body),
		contentType: p.ContentType,
	}
}

func (r *Request) Method() string      { return r.method }
func (r *Request) URL() string         { return r.fullURL }
func (r *Request) ContentType() string { return r.contentType }

// Headers returns a copy of the flattened request headers
func (r *Request) Headers() map[string]string { return maps.Clone(r.headers) }

// PathParams returns a copy of the path parameters supplied by the framework router
func (r *Request) PathParams() map[string]string { return maps.Clone(r.pathParams) }

// QueryParams returns a copy of the query parameters
func (r *Request) QueryParams() map[string][]string { return cloneQuery(r.queryParams) }

// Query returns the query parameters as url.Values
func (r *Request) Query() url.Values { return url.Values(cloneQuery(r.queryParams)) }

// Body returns a copy of the drained request body
func (r *Request) Body() []byte { return slices.Clone(r.body) }

func cloneOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}

func cloneQuery(q map[string][]string) map[string][]string {
	out := make(map[string][]string, len(q))
	for k, v := range q {
		out[k] = slices.Clone(v)
	}
	return out
}
