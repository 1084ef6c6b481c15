// Copyright 2026 mandelgrid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mandel

import (
	"context"
	"sync"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/gofract/mandelgrid/mandel/workerpool"
)

// rowsPerBatch is the work-stealing batch size for the parallel
// strategies. Rows near the set cost the full budget while edge rows
// escape almost immediately; small stolen batches keep workers busy.
const rowsPerBatch = 4

// defaultPool serves Parallel/ParallelVectorized calls that pass a nil
// pool. It is sized to GOMAXPROCS and lives for the process.
var defaultPool = sync.OnceValue(func() *workerpool.Pool {
	return workerpool.New(0)
})

func validate[T Counts](vp Viewport, res Resolution, budget int) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	if err := res.Validate(); err != nil {
		return err
	}
	if budget <= 0 {
		return configErrorf("iteration budget %d is not positive", budget)
	}
	if uint64(budget) > maxCount[T]() {
		return &OverflowError{Budget: budget, Max: maxCount[T]()}
	}
	return nil
}

// Sequential computes the field one pixel at a time on the calling
// goroutine.
func Sequential[T Counts](vp Viewport, res Resolution, budget int) (*Grid[T], error) {
	if err := validate[T](vp, res, budget); err != nil {
		return nil, err
	}
	g := newGrid[T](res)
	xs := columnCoords(vp, res)
	_, dy := Steps(vp, res)
	fillRows(g, xs, vp.MinY, dy, 0, res.Height, budget)
	return g, nil
}

// SequentialInto computes the field into a caller-provided buffer of
// exactly Width*Height cells, row-major. The buffer is fully overwritten
// on success and untouched on error.
func SequentialInto[T Counts](dst []T, vp Viewport, res Resolution, budget int) error {
	if err := validate[T](vp, res, budget); err != nil {
		return err
	}
	if len(dst) != res.Cells() {
		return configErrorf("output buffer has %d cells, resolution %dx%d needs %d",
			len(dst), res.Width, res.Height, res.Cells())
	}
	g := &Grid[T]{res: res, cells: dst}
	xs := columnCoords(vp, res)
	_, dy := Steps(vp, res)
	fillRows(g, xs, vp.MinY, dy, 0, res.Height, budget)
	return nil
}

// Parallel computes the field with the scalar kernel, rows distributed
// across the pool's workers in disjoint contiguous groups. A nil pool
// uses a process-wide default sized to GOMAXPROCS.
//
// Cancellation is cooperative at row-group granularity: once ctx is
// done, no further row-groups start and ctx.Err() is returned with no
// grid.
func Parallel[T Counts](ctx context.Context, pool *workerpool.Pool, vp Viewport, res Resolution, budget int) (*Grid[T], error) {
	if err := validate[T](vp, res, budget); err != nil {
		return nil, err
	}
	if pool == nil {
		pool = defaultPool()
	}
	g := newGrid[T](res)
	xs := columnCoords(vp, res)
	_, dy := Steps(vp, res)
	err := pool.ParallelForBatched(ctx, res.Height, rowsPerBatch, func(start, end int) {
		fillRows(g, xs, vp.MinY, dy, start, end, budget)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ParallelVectorized computes the field with the lane-vectorized kernel,
// rows distributed like Parallel. laneWidth groups columns for the
// vector kernel; the grid width must divide evenly into lane groups or
// the call fails with a *ConfigError before any cell is computed.
//
// The result is bit-identical to Sequential and Parallel for the same
// inputs; the strategy only changes throughput.
func ParallelVectorized[T Counts](ctx context.Context, pool *workerpool.Pool, vp Viewport, res Resolution, budget, laneWidth int) (*Grid[T], error) {
	if err := validate[T](vp, res, budget); err != nil {
		return nil, err
	}
	if laneWidth <= 0 {
		return nil, configErrorf("lane width %d is not positive", laneWidth)
	}
	if res.Width%laneWidth != 0 {
		return nil, configErrorf("grid width %d is not divisible by lane width %d", res.Width, laneWidth)
	}
	if pool == nil {
		pool = defaultPool()
	}
	g := newGrid[T](res)
	xs := columnCoords(vp, res)
	_, dy := Steps(vp, res)
	err := pool.ParallelForBatched(ctx, res.Height, rowsPerBatch, func(start, end int) {
		scratch := make([]float64, hwy.MaxLanes[float64]())
		for row := start; row < end; row++ {
			y := vp.MinY + dy*float64(row)
			fillRowLanes(g.Row(row), xs, y, budget, laneWidth, scratch)
		}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// fillRows computes rows [start, end) with the scalar kernel. Each call
// owns its rows exclusively; together the row-groups cover every row of
// the grid exactly once. xs holds the shared per-column coordinates.
func fillRows[T Counts](g *Grid[T], xs []float64, minY, dy float64, start, end, budget int) {
	for row := start; row < end; row++ {
		y := minY + dy*float64(row)
		fillRowScalar(g.Row(row), xs, y, budget)
	}
}
