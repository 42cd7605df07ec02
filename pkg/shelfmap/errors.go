package shelfmap

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates a source file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates a spreadsheet could not be read as tabular data.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrInvalidQuery indicates a search query holds no number.
var ErrInvalidQuery = errors.New("query contains no number")

// LoadError represents a failure loading one source file.
type LoadError struct {
	Path      string
	Component string // "spreadsheet", "overlays"
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Component, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, component string, err error) *LoadError {
	return &LoadError{
		Path:      path,
		Component: component,
		Err:       err,
	}
}
