// Package scrapers holds what the acquisition paths under it share.
//
// each scraping method generally has this structure:
// 1. transform input into an HTTP request (method, url, query).
// 2. make the request.
// 3. make assertions on response validity (transport error, status, body type).
// 4. transform the response (body, headers) into an output structure, usually
//    goquery selectors into structs or json into structs.
//
// a failure at step 2 or a bad status at step 3 is ErrUpstreamUnavailable, a response whose
// body does not have the expected shape at step 4 is ErrMalformedDocument.
package scrapers

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable wraps transport failures and unexpected statuses.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedDocument wraps responses missing an expected element, attribute or field.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrNotFound is matched by every *NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")
)

// NotFoundError reports that a username does not resolve to an account upstream.
type NotFoundError struct {
	Username string
	Source   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find user %s on %s", e.Username, e.Source)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unavailable wraps err as ErrUpstreamUnavailable with context about what was requested.
func Unavailable(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrUpstreamUnavailable, err)
}

// UnexpectedStatus reports a response that arrived with a status outside 2xx.
func UnexpectedStatus(what string, status int) error {
	return fmt.Errorf("%s: %w: status %d", what, ErrUpstreamUnavailable, status)
}

// Malformed reports a response body lacking something it was expected to contain.
func Malformed(what string, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", what, ErrMalformedDocument, fmt.Sprintf(format, args...))
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindUpstreamUnavailable
	KindMalformedDocument
	// KindUnknown is any other error, such as a cancelled context or invalid input.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindMalformedDocument:
		return "malformed_document"
	}
	return "unknown"
}

// Kind classifies an error returned from an acquisition path.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformedDocument):
		return KindMalformedDocument
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	}
	return KindUnknown
}
