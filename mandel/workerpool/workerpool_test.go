// Copyright 2026 mandelgrid Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	err := pool.ParallelForBatched(context.Background(), n, 7, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	if err != nil {
		t.Fatalf("ParallelForBatched returned %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

// Every index must be visited exactly once, whatever the batch size and
// worker count.
func TestParallelForBatchedCoverage(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		for _, batch := range []int{1, 3, 4, 16, 100} {
			pool := New(workers)
			n := 53
			visits := make([]atomic.Int32, n)

			err := pool.ParallelForBatched(context.Background(), n, batch, func(start, end int) {
				for i := start; i < end; i++ {
					visits[i].Add(1)
				}
			})
			if err != nil {
				t.Fatalf("workers=%d batch=%d: %v", workers, batch, err)
			}

			for i := range visits {
				if got := visits[i].Load(); got != 1 {
					t.Errorf("workers=%d batch=%d: index %d visited %d times", workers, batch, i, got)
				}
			}
			pool.Close()
		}
	}
}

func TestParallelForBatchedCancelled(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	err := pool.ParallelForBatched(ctx, 100, 4, func(start, end int) {
		ran.Add(1)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParallelForBatched on cancelled ctx = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d batches ran after cancellation, want 0", ran.Load())
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// n smaller than workers
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelForBatched(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForBatched(ctx, n, 4, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
