package eia

import (
	"errors"
	"fmt"
	"strings"
)

// errMissingEnvelope marks a 2xx body without the response wrapper.
var errMissingEnvelope = errors.New("response envelope missing")

// StatusError reports a non-success HTTP status from the API. Body carries
// an excerpt of the response so the API's own error message stays visible.
type StatusError struct {
	Route      Route
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if msg == "" {
		return fmt.Sprintf("eia: route %q: status %d", displayRoute(e.Route), e.StatusCode)
	}
	return fmt.Sprintf("eia: route %q: status %d: %s", displayRoute(e.Route), e.StatusCode, msg)
}

// DecodeError reports a response body that could not be interpreted:
// undecodable JSON, a missing response envelope, or row payloads that do
// not match the documented shapes.
type DecodeError struct {
	Route Route
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("eia: route %q: %v", displayRoute(e.Route), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ShapeError reports a metadata payload that matches neither node shape:
// no child-route listing and none of the dataset descriptor fields.
type ShapeError struct {
	Route Route
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("eia: route %q: response has neither child routes nor dataset fields", displayRoute(e.Route))
}
