package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelviz/internal/sample"
)

func smp(sec int, vals ...float64) sample.Sample {
	return sample.Sample{
		Time:   time.Date(2026, 8, 23, 12, 0, sec, 0, time.UTC),
		Values: vals,
	}
}

func TestLifecycle(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Active())

	// inactive: samples are not recorded
	s.Append(smp(0, 1, 2, 3))
	assert.Equal(t, 0, s.Len())

	start := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	require.True(t, s.Start(start))
	assert.True(t, s.Active())
	assert.Equal(t, start, s.StartTime())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", s.ID().String())

	s.Append(smp(1, 1, 2, 3))
	s.Append(smp(2, 4, 5, 6))

	log, gotStart, ok := s.Stop()
	require.True(t, ok)
	assert.Equal(t, start, gotStart)
	require.Len(t, log, 2)
	assert.Equal(t, []float64{1, 2, 3}, log[0].Values)
	assert.Equal(t, []float64{4, 5, 6}, log[1].Values)
	assert.False(t, s.Active())
}

func TestStopWhileInactiveIsNoOp(t *testing.T) {
	s := NewSession()
	log, start, ok := s.Stop()
	assert.False(t, ok)
	assert.Nil(t, log)
	assert.True(t, start.IsZero())
}

func TestNoSamplesLeakBetweenSessions(t *testing.T) {
	s := NewSession()
	require.True(t, s.Start(time.Now()))
	s.Append(smp(1, 1))
	firstID := s.ID()
	_, _, ok := s.Stop()
	require.True(t, ok)

	require.True(t, s.Start(time.Now()))
	assert.Equal(t, 0, s.Len())
	assert.NotEqual(t, firstID, s.ID())

	log, _, ok := s.Stop()
	require.True(t, ok)
	assert.Empty(t, log)
}

func TestStartWhileActiveRejected(t *testing.T) {
	s := NewSession()
	require.True(t, s.Start(time.Now()))
	assert.False(t, s.Start(time.Now()))
}
