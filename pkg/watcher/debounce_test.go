package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestDebouncer_Coalesces(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	done := make(chan string, 10)
	d := NewDebouncer(50*time.Millisecond, func(path string) {
		calls.Add(1)
		done <- path
	})
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Schedule("/in/a.txt")
		time.Sleep(10 * time.Millisecond)
	}
	last := time.Now()

	select {
	case path := <-done:
		if path != "/in/a.txt" {
			t.Errorf("unexpected path %s", path)
		}
		if elapsed := time.Since(last); elapsed < 40*time.Millisecond {
			t.Errorf("callback fired %v after last event, expected at least the delay", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("callback not fired")
	}

	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("Expected 1 call, got %d", n)
	}
	if d.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", d.Pending())
	}
}

func TestDebouncer_IndependentPaths(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	seen := make(map[string]int)
	var wg sync.WaitGroup
	wg.Add(2)
	d := NewDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		seen[path]++
		mu.Unlock()
		wg.Done()
	})
	defer d.Stop()

	d.Schedule("/in/a.txt")
	d.Schedule("/in/b.txt")
	d.Schedule("/in/a.txt")
	if d.Pending() != 2 {
		t.Errorf("Expected 2 pending, got %d", d.Pending())
	}

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	if seen["/in/a.txt"] != 1 || seen["/in/b.txt"] != 1 {
		t.Errorf("unexpected calls: %v", seen)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func(string) { calls.Add(1) })

	d.Schedule("/in/a.txt")
	d.Cancel("/in/a.txt")
	if d.IsPending("/in/a.txt") {
		t.Error("path should not be pending after Cancel")
	}

	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Error("cancelled timer must not fire")
	}
}

func TestDebouncer_StopRefusesSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func(string) { calls.Add(1) })

	d.Schedule("/in/a.txt")
	d.Stop()
	d.Schedule("/in/b.txt")

	if d.Pending() != 0 {
		t.Errorf("Expected no pending after Stop, got %d", d.Pending())
	}
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("no callback expected after Stop, got %d", calls.Load())
	}
}
