package fetcher

import (
	"context"
	"fmt"
	"net/url"
)

// JSONGetter defines the interface for fetching JSON documents over HTTP
// with query parameters.
type JSONGetter interface {
	// GetJSON fetches the URL with the given query parameters and decodes
	// the response body into out.
	GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error
}

// StatusError is returned when the server responds with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.StatusCode, e.URL)
}

// DecodeError wraps a JSON decoding failure.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
