// Package monitor is the single consumer of the acquisition pipeline. One
// goroutine drains the handoff queue and owns the per-channel windows and
// the recording session; nothing else mutates them. Recording control and
// export run on that same goroutine, processed strictly in order, which is
// what keeps a new session from starting before the previous stop has
// taken ownership of its log.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"accelviz/internal/events"
	"accelviz/internal/export"
	"accelviz/internal/record"
	"accelviz/internal/sample"
	"accelviz/internal/window"
)

// Status is the user-facing state line shown by the display surface.
type Status string

const (
	StatusInitializing Status = "Application initializing..."
	StatusLive         Status = "Showing live sensor data"
	StatusRecording    Status = "Recording to memory"
	StatusSaving       Status = "Saving CSV to disk"
	StatusPlotting     Status = "Plotting recorded series"
)

// Config for the consumer side of the pipeline.
type Config struct {
	Channels []sample.ChannelSpec

	// window geometry
	Capacity           int
	RangeMin, RangeMax float64

	// export destinations
	OutDir     string
	CSVPrefix  string
	PlotPrefix string
}

type ctrlKind int

const (
	ctrlStart ctrlKind = iota
	ctrlStop
	ctrlRetry
)

type ctrlMsg struct {
	kind  ctrlKind
	reply chan ctrlReply
}

type ctrlReply struct {
	ok   bool
	path string
	err  error
}

// Monitor drains the events queue into the windows and the session.
type Monitor struct {
	cfg     Config
	queue   *events.Queue
	srcErrs <-chan error
	logger  *zap.Logger

	windows []*window.Window
	session *record.Session
	status  Status
	notify  func()

	// log of a session whose export failed, kept for retry
	pendingLog   []sample.Sample
	pendingStart time.Time

	ctrl chan ctrlMsg
}

func New(cfg Config, queue *events.Queue, srcErrs <-chan error, logger *zap.Logger) (*Monitor, error) {
	windows := make([]*window.Window, len(cfg.Channels))
	for i := range windows {
		w, err := window.New(cfg.Capacity, cfg.RangeMin, cfg.RangeMax)
		if err != nil {
			return nil, err
		}
		windows[i] = w
	}
	return &Monitor{
		cfg:     cfg,
		queue:   queue,
		srcErrs: srcErrs,
		logger:  logger,
		windows: windows,
		session: record.NewSession(),
		status:  StatusInitializing,
		ctrl:    make(chan ctrlMsg),
	}, nil
}

// OnDataChanged registers the repaint hook. It runs on the consumer
// goroutine, once per applied batch. Must be set before Run.
func (m *Monitor) OnDataChanged(fn func()) {
	m.notify = fn
}

// Snapshot returns channel ch's window contents for painting. Only valid
// from the consumer goroutine (i.e. inside the data-changed hook).
func (m *Monitor) Snapshot(ch int) (points []float64, min, max float64) {
	return m.windows[ch].Snapshot()
}

// Status returns the current user-facing state. Consumer goroutine only.
func (m *Monitor) Status() Status {
	return m.status
}

// Run drains the queue until ctx is cancelled. This goroutine is the only
// writer of the windows and the session.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("[monitor] received shutdown signal")
			return nil
		case <-m.queue.Wake():
			batch := m.queue.Drain()
			for _, smp := range batch {
				m.apply(smp)
			}
			if len(batch) > 0 && m.notify != nil {
				m.notify()
			}
		case err := <-m.srcErrs:
			m.logger.Warn("[monitor] source reported a read error", zap.Error(err))
		case msg := <-m.ctrl:
			msg.reply <- m.handle(msg.kind)
		}
	}
}

func (m *Monitor) apply(smp sample.Sample) {
	if m.status == StatusInitializing {
		m.status = StatusLive
	}
	m.session.Append(smp)
	for ch, v := range smp.Values {
		if ch >= len(m.windows) {
			break
		}
		m.windows[ch].Add(v)
	}
}

// StartRecording begins a new session. ok is false when a session is
// already active or a failed export is still pending.
func (m *Monitor) StartRecording(ctx context.Context) (ok bool, err error) {
	r, err := m.send(ctx, ctrlStart)
	return r.ok, err
}

// StopRecording ends the active session, writes the CSV log and renders
// the plots. ok is false when no session was active (nothing is written).
// A non-nil error is an *export.WriteError; the log is retained and
// RetryExport may be used.
func (m *Monitor) StopRecording(ctx context.Context) (ok bool, csvPath string, err error) {
	r, err := m.send(ctx, ctrlStop)
	if err != nil {
		return false, "", err
	}
	return r.ok, r.path, r.err
}

// RetryExport re-runs the export of a session whose StopRecording failed.
// ok is false when there is nothing to retry.
func (m *Monitor) RetryExport(ctx context.Context) (ok bool, csvPath string, err error) {
	r, err := m.send(ctx, ctrlRetry)
	if err != nil {
		return false, "", err
	}
	return r.ok, r.path, r.err
}

func (m *Monitor) send(ctx context.Context, kind ctrlKind) (ctrlReply, error) {
	msg := ctrlMsg{kind: kind, reply: make(chan ctrlReply, 1)}
	select {
	case m.ctrl <- msg:
	case <-ctx.Done():
		return ctrlReply{}, ctx.Err()
	}
	select {
	case r := <-msg.reply:
		return r, nil
	case <-ctx.Done():
		return ctrlReply{}, ctx.Err()
	}
}

func (m *Monitor) handle(kind ctrlKind) ctrlReply {
	switch kind {
	case ctrlStart:
		if m.pendingLog != nil {
			m.logger.Warn("[monitor] refusing to record: a failed export is pending")
			return ctrlReply{ok: false}
		}
		if !m.session.Start(time.Now()) {
			return ctrlReply{ok: false}
		}
		m.status = StatusRecording
		m.logger.Info("[monitor] recording started",
			zap.String("session", m.session.ID().String()))
		return ctrlReply{ok: true}

	case ctrlStop:
		log, start, ok := m.session.Stop()
		if !ok {
			return ctrlReply{ok: false}
		}
		path, err := m.export(log, start)
		if err != nil {
			m.pendingLog, m.pendingStart = log, start
			m.logger.Error("[monitor] export failed, log retained for retry",
				zap.Error(err), zap.Int("samples", len(log)))
		}
		m.status = StatusLive
		return ctrlReply{ok: true, path: path, err: err}

	case ctrlRetry:
		if m.pendingLog == nil {
			return ctrlReply{ok: false}
		}
		path, err := m.export(m.pendingLog, m.pendingStart)
		if err == nil {
			m.pendingLog, m.pendingStart = nil, time.Time{}
		}
		m.status = StatusLive
		return ctrlReply{ok: true, path: path, err: err}
	}
	return ctrlReply{err: fmt.Errorf("[monitor] unknown control message %d", kind)}
}

func (m *Monitor) export(log []sample.Sample, start time.Time) (string, error) {
	m.status = StatusSaving
	csvPath, err := export.SaveCSV(m.cfg.OutDir, m.cfg.CSVPrefix, log, start, m.cfg.Channels)
	if err != nil {
		return "", err
	}

	if len(log) == 0 {
		// nothing to plot; the header-only CSV still marks the session
		return csvPath, nil
	}

	m.status = StatusPlotting
	series := export.ToSeries(log, start)
	initMin, initMax := m.windows[0].InitialRange()
	if _, err := export.SavePlots(m.cfg.OutDir, m.cfg.PlotPrefix, start, series, m.cfg.Channels, initMin, initMax); err != nil {
		return csvPath, err
	}

	m.logger.Info("[monitor] session exported",
		zap.String("csv", csvPath), zap.Int("samples", len(log)))
	return csvPath, nil
}
