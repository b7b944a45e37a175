package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightDeduplicates(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, _ := g.Do("feed:prices", func() (any, error) {
				calls.Add(1)
				time.Sleep(5 * time.Millisecond)
				return 42, nil
			})
			if err != nil || val != 42 {
				t.Errorf("unexpected result: %v %v", val, err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected single execution, got %d", got)
	}
}

func TestSingleFlightSequentialCallsRunIndependently(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int64

	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("k", func() (any, error) {
			calls.Add(1)
			return nil, nil
		})
		if shared {
			t.Fatal("sequential call should not be shared")
		}
	}

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 executions, got %d", got)
	}
}
