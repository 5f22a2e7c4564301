package acquire

import "fmt"

// InitError reports an endpoint that could not be opened. Fatal for the
// acquisition run; the loop goes straight to Stopped.
type InitError struct {
	Port string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("[acquire] opening %s: %v", e.Port, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ReadError reports one bad frame or failed read. Recoverable: it aborts
// only the current poll, and the loop keeps going.
type ReadError struct {
	Reason string
	Frame  []byte
	Err    error
}

func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[acquire] %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("[acquire] %s", e.Reason)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
