package export

import "fmt"

// WriteError reports a filesystem failure while saving a CSV or image.
// The caller still holds the in-memory log and may retry.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("[export] writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
