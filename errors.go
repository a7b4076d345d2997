package lottie

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema is the base of document consistency failures. Every
	// *SchemaError matches it with errors.Is.
	ErrSchema = errors.New("lottie: invalid document")

	// ErrUnsupported is the base of unsupported-feature failures. Every
	// *UnsupportedFeatureError matches it with errors.Is.
	ErrUnsupported = errors.New("lottie: unsupported feature")

	// ErrUnknownMarker is returned by PlaySegment for marker names the
	// document does not define.
	ErrUnknownMarker = errors.New("lottie: unknown marker")
)

// SchemaError reports a malformed or inconsistent document. It is fatal
// for loading the document.
type SchemaError struct {
	// Path locates the offending value, such as "layers[3].parent".
	Path   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := "lottie: invalid document"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Is reports ErrSchema as a match.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// schemaErrorf builds a *SchemaError with a formatted reason.
func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedFeatureError reports a document feature the renderer does
// not implement. Players skip the affected node or layer and keep
// rendering.
type UnsupportedFeatureError struct {
	Feature string
	Layer   string
}

func (e *UnsupportedFeatureError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("lottie: unsupported feature %s", e.Feature)
	}
	return fmt.Sprintf("lottie: unsupported feature %s in layer %q", e.Feature, e.Layer)
}

// Is reports ErrUnsupported as a match.
func (e *UnsupportedFeatureError) Is(target error) bool { return target == ErrUnsupported }
