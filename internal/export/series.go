// Package export turns a completed recording into per-channel series and
// durable CSV/PNG files.
package export

import (
	"time"

	"accelviz/internal/sample"
)

// Point is one (elapsed seconds, value) pair of an exported series.
type Point struct {
	Elapsed float64
	Value   float64
}

// Series is one channel's elapsed-time view of a recorded log.
type Series []Point

// ToSeries splits a recorded log into one series per channel, with each
// timestamp normalized to seconds elapsed since start. Entries keep their
// original order; there is no resampling or interpolation. Pure: the same
// log and start always produce the same output.
func ToSeries(log []sample.Sample, start time.Time) []Series {
	if len(log) == 0 {
		return nil
	}
	// channel count is fixed for the lifetime of a run
	n := len(log[0].Values)
	out := make([]Series, n)
	for ch := range out {
		out[ch] = make(Series, 0, len(log))
	}
	for _, smp := range log {
		elapsed := smp.Time.Sub(start).Seconds()
		for ch, v := range smp.Values {
			out[ch] = append(out[ch], Point{Elapsed: elapsed, Value: v})
		}
	}
	return out
}
