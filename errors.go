package garnish

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnterminatedPattern indicates a pattern scalar with no closing delimiter.
	ErrUnterminatedPattern = errors.New("unterminated pattern")

	// ErrInvalidFlag indicates an unknown or duplicated pattern flag.
	ErrInvalidFlag = errors.New("invalid pattern flag")

	// ErrPatternSyntax indicates a pattern body that fails to compile.
	ErrPatternSyntax = errors.New("invalid pattern syntax")

	// ErrEmptyCallableBody indicates a callable tag with no scalar text.
	ErrEmptyCallableBody = errors.New("empty callable body")

	// ErrMalformedCallable indicates callable source that fails to parse.
	ErrMalformedCallable = errors.New("malformed callable source")

	// ErrTagNotApplicable indicates a tag no registered extension handles.
	ErrTagNotApplicable = errors.New("tag not applicable")

	// ErrUnmarshal indicates the base codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the base codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// DocumentError represents a construction failure at a specific document
// position. It wraps the construction error with the offending tag and
// the node's line and column as reported by the base codec.
type DocumentError struct {
	Err    error  // Construction error, wrapping a sentinel (ErrInvalidFlag, etc.)
	Tag    string // Tag of the offending node, spelled as the document carried it
	Line   int    // 1-based line of the offending node
	Column int    // 1-based column of the offending node
}

func (e *DocumentError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("line %d, column %d: %v (%s)", e.Line, e.Column, e.Err, e.Tag)
	}
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// CodecError represents a base-codec marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the base codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newDocumentError creates a DocumentError for a failed construction.
func newDocumentError(err error, tag string, line, column int) error {
	return &DocumentError{
		Err:    err,
		Tag:    tag,
		Line:   line,
		Column: column,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
