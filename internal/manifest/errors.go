package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrInvalidArgument indicates a missing or wrongly typed argument
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates no manifest could be resolved or the path does not exist
	ErrNotFound = errors.New("tiapp.xml not found")

	// ErrParse indicates the XML engine rejected the manifest text
	ErrParse = errors.New("malformed tiapp.xml")

	// ErrNotLoaded indicates the handle holds no parsed document
	ErrNotLoaded = errors.New("no tiapp.xml loaded")
)

// ParseError reports a manifest the XML engine could not parse.
// It matches ErrParse with errors.Is and unwraps to the engine error.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %s: %v", ErrParse, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(path string, err error) *ParseError {
	return &ParseError{
		Path: path,
		Err:  err,
	}
}
