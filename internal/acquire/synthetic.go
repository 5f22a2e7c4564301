package acquire

import (
	"math/rand"
	"time"

	"accelviz/internal/sample"
)

// SyntheticSource emulates the sensor with a clamped per-channel random
// walk, for running the application with no radio at hand. Never fails.
type SyntheticSource struct {
	cfg    Config
	rng    *rand.Rand
	period time.Duration
	values []float64
}

func NewSyntheticSource(cfg Config) *SyntheticSource {
	return &SyntheticSource{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		period: 20 * time.Millisecond,
	}
}

func (s *SyntheticSource) Init() error {
	s.values = make([]float64, s.cfg.Channels)
	return nil
}

// PollOnce yields the current walk position, advances each channel by a
// small random step clamped to the configured physical range, and sleeps
// one period to emulate the sensor cadence.
func (s *SyntheticSource) PollOnce() (sample.Sample, error) {
	values := make([]float64, len(s.values))
	copy(values, s.values)
	smp := sample.Sample{Time: time.Now(), Values: values}

	span := s.cfg.ValueMax - s.cfg.ValueMin
	for i := range s.values {
		step := float64(s.rng.Intn(11)-5) / 500.0 * span
		s.values[i] = clamp(s.values[i]+step, s.cfg.ValueMin, s.cfg.ValueMax)
	}

	time.Sleep(s.period)
	return smp, nil
}

func (s *SyntheticSource) Cleanup() {}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
