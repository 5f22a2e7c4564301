package sample

import (
	"fmt"
	"image/color"
	"time"
)

// Sample is one timestamped multi-channel sensor reading. Samples are
// produced by an acquisition source and never mutated afterwards.
type Sample struct {
	Time   time.Time
	Values []float64
}

// ChannelSpec describes one channel for display and export purposes.
type ChannelSpec struct {
	Name  string
	Unit  string
	Color color.RGBA
}

// AccelChannels matches the reference 3-axis accelerometer wiring:
// ADC0 = X, ADC1 = Y, ADC2 = Z.
var AccelChannels = []ChannelSpec{
	{Name: "X", Unit: "g", Color: color.RGBA{R: 16, G: 225, B: 53, A: 255}},
	{Name: "Y", Unit: "g", Color: color.RGBA{R: 0, G: 174, B: 253, A: 255}},
	{Name: "Z", Unit: "g", Color: color.RGBA{R: 255, G: 128, B: 0, A: 255}},
}

var palette = []color.RGBA{
	{R: 16, G: 225, B: 53, A: 255},
	{R: 0, G: 174, B: 253, A: 255},
	{R: 255, G: 128, B: 0, A: 255},
	{R: 225, G: 16, B: 188, A: 255},
	{R: 255, G: 222, B: 0, A: 255},
	{R: 128, G: 128, B: 255, A: 255},
}

// GenericChannels builds specs for sensors that are not the reference
// accelerometer setup.
func GenericChannels(n int, unit string) []ChannelSpec {
	specs := make([]ChannelSpec, n)
	for i := range specs {
		specs[i] = ChannelSpec{
			Name:  fmt.Sprintf("ch%d", i),
			Unit:  unit,
			Color: palette[i%len(palette)],
		}
	}
	return specs
}
