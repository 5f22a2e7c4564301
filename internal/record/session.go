// Package record implements the start/stop-bounded capture of delivered
// samples.
package record

import (
	"time"

	"github.com/google/uuid"

	"accelviz/internal/sample"
)

// Session is an in-memory recording of every sample delivered between
// Start and Stop. It is owned exclusively by the consumer goroutine; the
// acquisition side never touches it.
type Session struct {
	active bool
	start  time.Time
	id     uuid.UUID
	log    []sample.Sample
}

func NewSession() *Session {
	return &Session{}
}

// Start begins a new capture with an empty log. Returns false if a capture
// is already active: a new session cannot begin until the previous Stop
// has taken ownership of its log.
func (s *Session) Start(now time.Time) bool {
	if s.active {
		return false
	}
	s.active = true
	s.start = now
	s.id = uuid.New()
	s.log = nil
	return true
}

// Append records one delivered sample. Ignored while inactive.
func (s *Session) Append(smp sample.Sample) {
	if !s.active {
		return
	}
	s.log = append(s.log, smp)
}

// Stop ends the capture and hands the log to the caller. ok is false when
// no capture was active, in which case nothing else happens. The session
// is reset and ready for the next Start.
func (s *Session) Stop() (log []sample.Sample, start time.Time, ok bool) {
	if !s.active {
		return nil, time.Time{}, false
	}
	log, start = s.log, s.start
	s.active = false
	s.start = time.Time{}
	s.log = nil
	return log, start, true
}

// Active reports whether a capture is in progress.
func (s *Session) Active() bool {
	return s.active
}

// ID identifies the current capture in log lines. Zero when inactive.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// StartTime returns when the current capture began. Zero when inactive.
func (s *Session) StartTime() time.Time {
	return s.start
}

// Len returns the number of recorded samples so far.
func (s *Session) Len() int {
	return len(s.log)
}
