package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, n := range []int{1, 7, 1000, 12345} {
		hits := make([]int32, n)
		Parallelize(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) { called = true })
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	tests := []struct {
		name         string
		items        int
		threshold    int
		wantParallel bool
	}{
		{"below threshold", 10, 100, false},
		{"at threshold", 100, 100, true},
		{"disabled", 1_000_000, 0, false},
		{"negative disables", 50, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total int64
			got := ParallelizeWithThreshold(tt.items, tt.threshold, func(start, end int) {
				atomic.AddInt64(&total, int64(end-start))
			})
			if got != tt.wantParallel {
				t.Errorf("parallel = %v, want %v", got, tt.wantParallel)
			}
			if total != int64(tt.items) {
				t.Errorf("covered %d items, want %d", total, tt.items)
			}
		})
	}
}
