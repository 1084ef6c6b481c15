// Copyright 2026 mandelgrid Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent fork-join worker pool for the
// row-parallel strategies. A Pool is created once and reused across many
// field computations, so per-call goroutine spawning never shows up in
// the per-frame cost.
//
// The pool hands out disjoint contiguous index ranges (row-groups). Each
// range is owned by exactly one task, which is what lets the engine
// write the output grid without any locking.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, frame := range frames {
//	    pool.ParallelFor(height, func(start, end int) {
//	        fillRows(start, end)
//	    })
//	}
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and reused until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one scheduled task.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers, spawned immediately.
// If numWorkers <= 0, GOMAXPROCS workers are used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes first. Calling Close
// more than once is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn over [0, n) partitioned into one contiguous
// range per worker, and blocks until every range is done. fn receives
// half-open bounds [start, end); the ranges are disjoint and together
// cover [0, n) exactly.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Sequential fallback once the pool is gone.
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForBatched executes fn over [0, n) using atomic work stealing
// in batches of batchSize indices. Escape-time rows vary widely in cost
// (rows crossing the set iterate to the full budget), so small stolen
// batches keep the workers balanced where static per-worker chunks
// would not.
//
// Batches stop being handed out once ctx is done; already running
// batches finish. Returns ctx.Err() if the context was cancelled,
// nil otherwise.
func (p *Pool) ParallelForBatched(ctx context.Context, n, batchSize int, fn func(start, end int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closed.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, n)
		return ctx.Err()
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	if workers == 1 {
		for start := 0; start < n; start += batchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(start, min(start+batchSize, n))
		}
		return ctx.Err()
	}

	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for ctx.Err() == nil {
					batch := int(nextBatch.Add(1)) - 1
					start := batch * batchSize
					if start >= n {
						return
					}
					fn(start, min(start+batchSize, n))
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return ctx.Err()
}
