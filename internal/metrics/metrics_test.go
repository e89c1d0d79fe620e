package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(5)

	assert.Equal(t, uint64(105), c.Load())
}

func TestSnapshot(t *testing.T) {
	Reset()
	defer Reset()

	OrdersPlaced.Inc()
	StatusTransitions.Add(3)

	snap := Snapshot()
	assert.Equal(t, uint64(1), snap["orders_placed"])
	assert.Equal(t, uint64(3), snap["status_transitions"])
	assert.Equal(t, uint64(0), snap["invalid_transitions"])
	assert.Len(t, snap, len(registry))
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
