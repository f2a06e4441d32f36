package ui

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_SingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for rapid succession, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected last value 10, got %d", lastValue)
	}
}

func TestDebouncer_MaxWait(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewThrottledDebouncer(50*time.Millisecond, 100*time.Millisecond)

	// a call every 20ms would starve a plain debouncer for the whole 400ms
	for i := 1; i <= 20; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(20 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&called); got < 2 {
		t.Errorf("Expected the max wait to fire during the burst, got %d calls", got)
	}

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&lastValue) != 20 {
		t.Errorf("Expected the last call to win, got %d", lastValue)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(10 * time.Millisecond)
	debouncer.Cancel()

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(time.Hour)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})
	debouncer.Flush()
	if atomic.LoadInt32(&called) != 1 {
		t.Fatalf("Expected flush to run the pending call, got %d", called)
	}

	// nothing pending: flush is a no-op
	debouncer.Flush()
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected no extra call, got %d", called)
	}
}

func TestDebouncer_Immediate(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	debouncer.Immediate(func() {
		atomic.AddInt32(&called, 10)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 10 {
		t.Errorf("Expected 10 (immediate only), got %d", called)
	}
}
