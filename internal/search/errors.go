package search

import (
	"errors"
	"fmt"

	"qsearch/internal/domain"
)

var (
	ErrNoClient   = errors.New("search: client is required")
	ErrNoExecutor = errors.New("search: executor is required")
)

// SearchFailedError reports a failed call to the search service.
// It is recorded in State.Err and published on the bus, never returned
// to the view.
type SearchFailedError struct {
	Key       domain.PageKey
	RequestID string
	Err       error
}

func (e *SearchFailedError) Error() string {
	return fmt.Sprintf("search %s failed: %v", e.Key, e.Err)
}

func (e *SearchFailedError) Unwrap() error {
	return e.Err
}
