// Package display paints window snapshots as terminal line charts. It is a
// collaborator of the core pipeline, not part of it: the monitor triggers
// it through the data-changed hook and it only ever reads snapshots.
package display

import (
	"time"

	tm "github.com/buger/goterm"

	"accelviz/internal/monitor"
	"accelviz/internal/sample"
)

// Snapshotter is the read side the surface paints from.
type Snapshotter interface {
	Snapshot(ch int) (points []float64, min, max float64)
	Status() monitor.Status
}

// Surface draws one chart per channel plus a status line. Repaint runs on
// the consumer goroutine and is throttled to a fixed interval so terminal
// I/O cannot stall ingest.
type Surface struct {
	channels []sample.ChannelSpec
	interval time.Duration
	last     time.Time
	width    int
	height   int
}

func New(channels []sample.ChannelSpec) *Surface {
	height := tm.Height()/len(channels) - 3
	if height < 5 {
		height = 5
	}
	return &Surface{
		channels: channels,
		interval: 100 * time.Millisecond,
		width:    tm.Width(),
		height:   height,
	}
}

// Repaint redraws every channel from src. Calls inside the throttle
// interval are dropped; the next one catches up.
func (s *Surface) Repaint(src Snapshotter) {
	now := time.Now()
	if now.Sub(s.last) < s.interval {
		return
	}
	s.last = now

	tm.MoveCursor(1, 1)
	for ch, spec := range s.channels {
		points, min, max := src.Snapshot(ch)

		data := new(tm.DataTable)
		data.AddColumn("t")
		data.AddColumn(spec.Name)
		for i, v := range points {
			data.AddRow(float64(i), v)
		}

		chart := tm.NewLineChart(s.width, s.height)
		chart.Flags = tm.DRAW_RELATIVE
		tm.Printf("%s axis  [%.2f .. %.2f] (%s)\n", spec.Name, min, max, spec.Unit)
		tm.Println(chart.Draw(data))
	}
	tm.Println(string(src.Status()))
	tm.Flush()
}
