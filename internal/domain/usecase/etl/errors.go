package etl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"weather-etl/internal/domain/entity"
)

var (
	// ErrNoRecords is returned by Transform when called without records.
	ErrNoRecords = errors.New("no weather records to transform")
	// ErrRunInProgress is returned when the run lock is held by another invocation.
	ErrRunInProgress = errors.New("another weather etl run is in progress")
)

// MalformedResponseError reports a response that is missing or mistypes one of the extracted fields.
type MalformedResponseError struct {
	Location entity.Location
	Field    string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response for %s: field %s: %v", e.Location, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed response for %s: field %s missing", e.Location, e.Field)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// CoercionError reports a column value that could not be converted to its numeric type.
type CoercionError struct {
	City   string
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s=%q of %s to a number: %v", e.Column, e.Value, e.City, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// MalformedPolicy decides what a malformed response does to the run.
type MalformedPolicy string

const (
	// MalformedSkip logs the location and keeps going, like a network failure.
	MalformedSkip MalformedPolicy = "skip"
	// MalformedFatal aborts the run with the MalformedResponseError.
	MalformedFatal MalformedPolicy = "fatal"
)

// ParseMalformedPolicy accepts "skip" or "fatal", case insensitive. Empty means skip.
func ParseMalformedPolicy(value string) (MalformedPolicy, error) {
	switch MalformedPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", MalformedSkip:
		return MalformedSkip, nil
	case MalformedFatal:
		return MalformedFatal, nil
	default:
		return "", fmt.Errorf("unknown malformed response policy %q, expected skip or fatal", value)
	}
}

// HTTPStatus maps a Run error to the status code answered by the HTTP surfaces.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
