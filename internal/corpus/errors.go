package corpus

import (
	"errors"
	"fmt"
)

// Sentinel causes for careers data that holds nothing to load. Only these
// and a missing file allow the built-in fallback.
var (
	ErrEmptyData     = errors.New("careers data is empty")
	ErrNoOccupations = errors.New("careers data contains no occupations")
)

// LoadError represents an error while reading or normalizing the corpus
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corpus load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("corpus load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
