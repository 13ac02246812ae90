// Package transport provides an http.RoundTripper that forces specific
// headers onto outbound requests. It is used to override headers a client
// library sets on its own, such as the SDK User-Agent.
package transport

import (
	"net/http"
	"time"
)

// HeaderRoundTripper wraps an http.RoundTripper, setting specific headers on
// every request. Existing header values are replaced, not appended to.
type HeaderRoundTripper struct {
	Base    http.RoundTripper
	Headers map[string]string
}

// RoundTrip executes a single HTTP transaction with the configured headers.
// The incoming request is cloned so the caller's request is never mutated.
func (t *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())

	for key, value := range t.Headers {
		cloned.Header.Set(key, value)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(cloned)
}

// NewClient returns an *http.Client whose transport forces the given headers.
func NewClient(timeout time.Duration, headers map[string]string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &HeaderRoundTripper{
			Base:    http.DefaultTransport,
			Headers: headers,
		},
	}
}
