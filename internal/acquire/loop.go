package acquire

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"accelviz/internal/events"
)

// State of an acquisition loop.
type State int32

const (
	Created State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Loop drives a Source on its own goroutine: Init once, then PollOnce
// repeatedly, forwarding every sample to the events queue. A failed Init
// is fatal for the run and surfaces through Wait. A *ReadError from a poll
// is reported on Errors and polling continues: one bad frame must not kill
// a session.
//
// Stop is cooperative and observed only at poll boundaries; an in-flight
// blocking poll is allowed to complete once more before the loop notices.
type Loop struct {
	src    Source
	queue  *events.Queue
	logger *zap.Logger

	state    atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	errs     chan error
	err      error // fatal init error, set before done closes
}

func NewLoop(src Source, queue *events.Queue, logger *zap.Logger) *Loop {
	return &Loop{
		src:    src,
		queue:  queue,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		errs:   make(chan error, 16),
	}
}

// State reports the loop's lifecycle state. Safe from any goroutine.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Errors delivers recoverable read errors. Samples never travel this
// channel and errors never travel the sample queue, so the consumer cannot
// mistake one for the other. Reports are dropped if nobody is listening;
// the loop never blocks on them.
func (l *Loop) Errors() <-chan error {
	return l.errs
}

// Start transitions Created to Running and spawns the poll goroutine.
func (l *Loop) Start() error {
	if !l.state.CompareAndSwap(int32(Created), int32(Running)) {
		return fmt.Errorf("[acquire] loop already started (state %s)", l.State())
	}
	go l.run()
	return nil
}

// Stop requests shutdown. Idempotent, safe from any goroutine. Use Wait to
// join the loop afterwards.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.state.CompareAndSwap(int32(Running), int32(Stopping))
		close(l.stop)
	})
}

// Wait blocks until the loop reaches Stopped and returns the fatal error
// from Init, if any.
func (l *Loop) Wait() error {
	<-l.done
	return l.err
}

func (l *Loop) run() {
	defer close(l.done)

	if err := l.src.Init(); err != nil {
		l.err = err
		l.state.Store(int32(Stopped))
		l.logger.Error("[acquire] source init failed", zap.Error(err))
		return
	}

	defer l.state.Store(int32(Stopped))
	defer l.src.Cleanup()

	for {
		select {
		case <-l.stop:
			l.logger.Info("[acquire] exiting poll loop")
			return
		default:
		}

		smp, err := l.src.PollOnce()
		if err != nil {
			var readErr *ReadError
			if errors.As(err, &readErr) {
				l.logger.Warn("[acquire] dropping bad frame",
					zap.Error(err), zap.ByteString("frame", readErr.Frame))
			} else {
				l.logger.Warn("[acquire] poll failed", zap.Error(err))
			}
			l.report(err)
			continue
		}
		l.queue.Push(smp)
	}
}

func (l *Loop) report(err error) {
	select {
	case l.errs <- err:
	default:
	}
}
