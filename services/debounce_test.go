package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_RapidSchedulesRunOnce(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var fired []uint64

	// จำลองพิมพ์รัว ๆ แต่ละ keystroke แทนงานเดิม
	for i := 0; i < 5; i++ {
		d.Schedule(func(gen uint64) {
			if !d.Latest(gen) {
				return
			}
			mu.Lock()
			fired = append(fired, gen)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, fired, 1)
	require.Equal(t, uint64(5), fired[0])
}

func TestDebouncer_StaleGenerationIsDropped(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	gen1 := d.Schedule(func(uint64) {})
	gen2 := d.Schedule(func(uint64) {})

	require.False(t, d.Latest(gen1))
	require.True(t, d.Latest(gen2))
}

func TestDebouncer_StopInvalidatesPendingWork(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	done := make(chan uint64, 1)
	gen := d.Schedule(func(g uint64) { done <- g })

	d.Stop()

	select {
	case <-done:
		t.Fatal("stopped work should not fire")
	case <-time.After(50 * time.Millisecond):
	}

	// ต่อให้ fire ไปแล้ว Latest ต้องบอกว่าไม่ใช่งานล่าสุด
	require.False(t, d.Latest(gen))
}
