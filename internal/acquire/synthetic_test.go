package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticSourceStaysInRange(t *testing.T) {
	cfg := Config{Channels: 3, ValueMin: -2, ValueMax: 2}
	src := NewSyntheticSource(cfg)
	src.period = 0 // no need to emulate the cadence here
	require.NoError(t, src.Init())
	defer src.Cleanup()

	for i := 0; i < 200; i++ {
		smp, err := src.PollOnce()
		require.NoError(t, err)
		require.Len(t, smp.Values, 3)
		assert.False(t, smp.Time.IsZero())
		for _, v := range smp.Values {
			assert.GreaterOrEqual(t, v, cfg.ValueMin)
			assert.LessOrEqual(t, v, cfg.ValueMax)
		}
	}
}

func TestSyntheticSourceWalksFromZero(t *testing.T) {
	cfg := Config{Channels: 2, ValueMin: -2, ValueMax: 2}
	src := NewSyntheticSource(cfg)
	src.period = 0
	require.NoError(t, src.Init())

	smp, err := src.PollOnce()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, smp.Values)
}
