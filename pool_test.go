package grove

import (
	"sync/atomic"
	"testing"
)

func TestPoolCoversEveryIndexOnce(t *testing.T) {
	p := newWorkerPool(4)
	defer p.stop()

	const n = 1000
	var hits [n]int32
	p.run(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d hit %d times", i, h)
		}
	}
}

func TestPoolSmallRange(t *testing.T) {
	p := newWorkerPool(8)
	defer p.stop()

	// Fewer items than workers: chunks collapse to one per item.
	var hits [3]int32
	p.run(len(hits), func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d hit %d times", i, h)
		}
	}
}

func TestPoolEmptyRange(t *testing.T) {
	p := newWorkerPool(2)
	defer p.stop()

	called := false
	p.run(0, func(start, end int) { called = true })
	if called {
		t.Error("kernel invoked for empty range")
	}
}

func TestPoolStopIdempotent(t *testing.T) {
	p := newWorkerPool(2)
	p.stop()
	p.stop() // must not panic
}

func TestPoolSingleWorkerRunsInline(t *testing.T) {
	p := newWorkerPool(1)
	defer p.stop()

	ranges := [][2]int{}
	p.run(10, func(start, end int) {
		ranges = append(ranges, [2]int{start, end})
	})
	if len(ranges) != 1 || ranges[0] != [2]int{0, 10} {
		t.Errorf("single worker ranges = %v, want one [0,10) chunk", ranges)
	}
}
