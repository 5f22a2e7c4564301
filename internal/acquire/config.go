// Package acquire produces samples: the source abstraction, its serial and
// synthetic implementations, and the loop that drives a source on its own
// goroutine.
package acquire

// Calibration maps one raw ADC reading to a physical unit.
type Calibration func(raw uint16) float64

// ADCCalibration builds the accelerometer transfer function:
// ((divider * (raw * vref / 1024)) - offset) / mvPerG, with vref and offset
// in millivolts.
func ADCCalibration(divider, vref, offset, mvPerG float64) Calibration {
	return func(raw uint16) float64 {
		return (divider*(float64(raw)*vref/1024.0) - offset) / mvPerG
	}
}

// Config is the immutable per-source configuration. Built once by the
// entry point and never modified afterwards.
type Config struct {
	// serial endpoint, hardware source only
	Port string
	Baud int

	// readings extracted per frame
	Channels int

	Calib Calibration

	// physical extent of one reading; the synthetic source clamps its
	// random walk to this
	ValueMin, ValueMax float64
}
