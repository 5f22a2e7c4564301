package acquire

import "accelviz/internal/sample"

// Source is one interchangeable producer of samples. The channel count and
// order it yields are fixed for the lifetime of a run.
type Source interface {
	// Init opens the endpoint. An *InitError here is fatal for the run.
	Init() error

	// PollOnce blocks until the next reading is available and returns it.
	// A *ReadError aborts only this call; the caller may poll again.
	PollOnce() (sample.Sample, error)

	// Cleanup releases any held endpoint resource. Best effort; safe to
	// call after a failed Init.
	Cleanup()
}
