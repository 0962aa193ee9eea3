package doxygen

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName indicates a compound or member without a usable <name>.
	ErrMissingName = errors.New("missing name element")

	// ErrMissingVersion indicates Doxyfile.xml has no PROJECT_NUMBER value.
	ErrMissingVersion = errors.New("missing PROJECT_NUMBER option")
)

// IOError reports an input file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports an input file that is not well-formed XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports well-formed XML that lacks an expected element or
// attribute.
type SchemaError struct {
	Path   string
	Detail string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Detail)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// withPath fills in the file path on errors produced by the reader-level
// parsers, which do not know where their input came from.
func withPath(err error, path string) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) && parseErr.Path == "" {
		parseErr.Path = path
		return parseErr
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Path == "" {
		schemaErr.Path = path
		return schemaErr
	}
	return err
}
