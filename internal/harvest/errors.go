package harvest

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned by Store.Read when no snapshot exists for
// the requested month. Callers must treat it as "no updates", not a failure.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// NetworkError reports a transport-level fetch failure (connect, timeout).
// The affected source is skipped for the run.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-success status from a source endpoint.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// DateParseError reports that no date format strategy matched a token. The
// row carrying the token is discarded rather than defaulted.
type DateParseError struct {
	Token string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("no date format matched %q", e.Token)
}

// StorageError reports a persistence failure. It is fatal to a harvest run;
// nothing can be safely merged or reported past it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
