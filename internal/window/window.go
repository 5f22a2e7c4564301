// Package window implements the bounded, auto-ranging history behind one
// scrolling display curve.
package window

import (
	"errors"
	"fmt"
)

// ErrHasData is returned when a configuration setter is called after the
// first point has arrived.
var ErrHasData = errors.New("window: cannot reconfigure after data has arrived")

// Window keeps the last capacity values of one channel together with a Y
// range that grows to cover every value ever added. The range only ever
// widens, by doubling the exceeded bound, so a curve never jumps around
// when the data settles back down.
//
// The range bounds must be on each side of zero: doubling a bound only
// makes progress when min < 0 < max.
//
// Single-writer, single-reader. The consumer goroutine funnel (see the
// monitor package) is what makes the absence of internal locking safe.
type Window struct {
	capacity         int
	points           []float64
	min, max         float64
	initMin, initMax float64
	started          bool
}

func New(capacity int, min, max float64) (*Window, error) {
	w := &Window{capacity: 1, min: -1, max: 1, initMin: -1, initMax: 1}
	if err := w.SetCapacity(capacity); err != nil {
		return nil, err
	}
	if err := w.SetRange(min, max); err != nil {
		return nil, err
	}
	return w, nil
}

// SetCapacity sets the number of retained points. Valid only before the
// first Add.
func (w *Window) SetCapacity(n int) error {
	if w.started {
		return ErrHasData
	}
	if n < 1 {
		return fmt.Errorf("window: capacity %d is not positive", n)
	}
	w.capacity = n
	return nil
}

// SetRange sets the initial Y range. Valid only before the first Add.
// The bounds must straddle zero.
func (w *Window) SetRange(min, max float64) error {
	if w.started {
		return ErrHasData
	}
	if min >= 0 || max <= 0 {
		return fmt.Errorf("window: range (%g, %g) must straddle zero", min, max)
	}
	w.min, w.max = min, max
	w.initMin, w.initMax = min, max
	return nil
}

// Add appends v. When the capacity is exceeded the oldest capacity/10
// points (at least one) are evicted in a single burst, amortizing the trim.
// The Y range is widened by repeated doubling of whichever bound v exceeds
// until v fits; it never narrows.
func (w *Window) Add(v float64) {
	w.started = true

	w.points = append(w.points, v)
	if len(w.points) > w.capacity {
		cut := w.capacity / 10
		if cut < 1 {
			cut = 1
		}
		n := copy(w.points, w.points[cut:])
		w.points = w.points[:n]
	}

	for v > w.max {
		w.max *= 2
	}
	for v < w.min {
		w.min *= 2
	}
}

// Snapshot returns a copy of the retained points and the current Y range,
// most recent point last.
func (w *Window) Snapshot() (points []float64, min, max float64) {
	points = make([]float64, len(w.points))
	copy(points, w.points)
	return points, w.min, w.max
}

// Range returns the current Y range.
func (w *Window) Range() (min, max float64) {
	return w.min, w.max
}

// InitialRange returns the configured range from before any auto-growth.
// Exports pin their value axis to this so images stay comparable.
func (w *Window) InitialRange() (min, max float64) {
	return w.initMin, w.initMax
}

// Len returns the number of retained points.
func (w *Window) Len() int {
	return len(w.points)
}

// Capacity returns the retention limit.
func (w *Window) Capacity() int {
	return w.capacity
}
