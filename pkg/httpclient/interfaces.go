package httpclient

import "context"

// Client is the minimal HTTP surface fetchers depend on, so tests can stub
// network calls.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Response exposes the parts of an HTTP response fetchers consume.
type Response interface {
	Body() []byte
	StatusCode() int
}
