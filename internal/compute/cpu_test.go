package compute

import (
	"sync/atomic"
	"testing"
)

func TestParallelForVisitsEachIndexOnce(t *testing.T) {
	backends := []Backend{
		NewSerialBackend(),
		NewCPUBackendN(1),
		NewCPUBackendN(3),
		NewCPUBackendN(8),
	}
	sizes := []int{0, 1, 7, 64, 1000, 8192}

	for _, b := range backends {
		for _, n := range sizes {
			counts := make([]int32, n)
			b.ParallelFor(n, 4, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&counts[i], 1)
				}
			})
			for i, c := range counts {
				if c != 1 {
					t.Fatalf("%s n=%d: index %d visited %d times", b.Name(), n, i, c)
				}
			}
		}
	}
}

func TestParallelForSmallRangeRunsInline(t *testing.T) {
	b := NewCPUBackendN(4)
	calls := 0
	b.ParallelFor(3, 16, func(start, end int) {
		calls++
		if start != 0 || end != 3 {
			t.Errorf("expected [0,3), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestSetBackend(t *testing.T) {
	orig := GetBackend()
	t.Cleanup(func() { SetBackend(orig) })

	SetBackend(NewSerialBackend())
	if GetBackend().Name() != "serial" {
		t.Errorf("expected serial backend, got %s", GetBackend().Name())
	}

	sum := 0
	ParallelFor(10, 1, func(start, end int) {
		for i := start; i < end; i++ {
			sum += i
		}
	})
	if sum != 45 {
		t.Errorf("expected 45, got %d", sum)
	}
}
