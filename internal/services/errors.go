package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreachable marks a backend that cannot be reached at all
	// (connection refused, DNS failure, service down, HTTP error status).
	ErrUnreachable = errors.New("backend unreachable")
	// ErrTimeout marks a backend call that exceeded its per-call deadline.
	ErrTimeout = errors.New("backend timeout")
	// ErrMalformed marks a response that could not be parsed.
	ErrMalformed = errors.New("malformed backend response")
	// ErrPartialResult marks a response missing translations for one or
	// more of the requested segments.
	ErrPartialResult = errors.New("partial backend result")
	// ErrConfiguration marks unusable settings rather than a backend fault.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUnreachable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsBackendFailure reports whether err carries one of the recoverable
// backend markers that trigger split-retry in the translator.
func IsBackendFailure(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrPartialResult)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "backend failure"
	}
	return strings.Join(parts, ": ")
}
