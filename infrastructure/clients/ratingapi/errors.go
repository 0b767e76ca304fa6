package ratingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkOrHTTP matches transport failures and non-2xx responses.
	ErrNetworkOrHTTP = errors.New("rating api request failed")
	// ErrParse matches bodies that are not the expected JSON.
	ErrParse = errors.New("rating api response malformed")
)

// HTTPError is returned for a non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *HTTPError) Is(target error) bool { return target == ErrNetworkOrHTTP }

// NetworkError wraps a transport failure.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetworkOrHTTP }

// ParseError wraps a JSON decoding failure.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
