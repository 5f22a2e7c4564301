package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelviz/internal/sample"
)

func TestFIFOOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 100; i++ {
		q.Push(sample.Sample{Values: []float64{float64(i)}})
	}

	var got []float64
	for _, s := range q.Drain() {
		got = append(got, s.Values[0])
	}
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, float64(i), v)
	}
	assert.Nil(t, q.Drain())
}

func TestPushNeverBlocksWithoutConsumer(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100000; i++ {
			q.Push(sample.Sample{Values: []float64{float64(i)}})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked with no consumer draining")
	}
	assert.Len(t, q.Drain(), 100000)
}

func TestWakeSignals(t *testing.T) {
	q := NewQueue()

	select {
	case <-q.Wake():
		t.Fatal("wake fired before any push")
	default:
	}

	q.Push(sample.Sample{Values: []float64{1}})
	select {
	case <-q.Wake():
	case <-time.After(time.Second):
		t.Fatal("no wake after push")
	}
}

func TestCloseWakesAndKeepsBacklog(t *testing.T) {
	q := NewQueue()
	q.Push(sample.Sample{Values: []float64{1}})
	<-q.Wake()

	q.Close()
	select {
	case <-q.Wake():
	case <-time.After(time.Second):
		t.Fatal("no wake after close")
	}

	assert.True(t, q.Closed())
	assert.Len(t, q.Drain(), 1)

	// pushes after close are discarded
	q.Push(sample.Sample{Values: []float64{2}})
	assert.Nil(t, q.Drain())
}
