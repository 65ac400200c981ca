package ranking

import "fmt"

// ConfigError signals a matcher precondition that the corpus does not meet.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ErrEmptyCorpus is returned when there is no occupation to recommend.
var ErrEmptyCorpus = &ConfigError{Message: "reference corpus is empty, no occupation to recommend"}
