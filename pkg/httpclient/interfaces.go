package httpclient

import "context"

// Response is the part of an HTTP response the client code relies on:
// the status code and the fully read body.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. A non-nil error means no status code was
// obtained (DNS, connection, timeout, cancelled context).
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
