package twitter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags the failure modes of an upstream call so callers can
// branch without string matching.
type ErrorKind int

const (
	// KindHTTP is a non-2xx upstream status not covered by a more
	// specific kind.
	KindHTTP ErrorKind = iota
	// KindRateLimited is an upstream 429.
	KindRateLimited
	// KindNotFound is a 404 or an upstream-reported missing resource.
	KindNotFound
	// KindUpstream is a 2xx response whose envelope carries an errors
	// array.
	KindUpstream
	// KindMalformed is a response body that is not valid JSON.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error describes a failed Twitter API call. StatusCode is zero when
// the failure was reported inside a 2xx envelope.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("twitter API error (status %d): %s", e.StatusCode, e.Message)
	}
	return "twitter API error: " + e.Message
}

// IsNotFound reports whether err is an upstream missing-resource
// failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited
}

// apiError is one entry of an upstream "errors" array. The v2 API
// reports missing resources this way on 200 responses.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

func (e apiError) isNotFound() bool {
	return strings.Contains(e.Type, "resource-not-found") ||
		strings.Contains(strings.ToLower(e.Title), "not found")
}

// envelopeError converts an upstream-reported errors array into a
// tagged error. Any reported error fails the whole call; partial data
// is never returned alongside one.
func envelopeError(errs []apiError) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]

	msg := first.Detail
	if msg == "" {
		msg = first.Title
	}
	if msg == "" {
		msg = "upstream reported an error"
	}

	kind := KindUpstream
	if first.isNotFound() {
		kind = KindNotFound
	}

	return &Error{Kind: kind, Message: msg}
}
