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

// Command mandelgrid computes an escape-time field and prints a coarse
// ASCII preview plus timing to stdout.
//
// Usage:
//
//	mandelgrid -width 800 -height 600 -iters 100 -strategy simd -lanes 8
//	mandelgrid -minx -0.75 -maxx -0.73 -miny 0.09 -maxy 0.11 -iters 1000
//	mandelgrid -compare            # run all three strategies and diff them
//	mandelgrid -info               # report the SIMD level in use
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ajroetker/go-highway/hwy"
	"golang.org/x/sync/errgroup"

	"github.com/gofract/mandelgrid/mandel"
	"github.com/gofract/mandelgrid/mandel/workerpool"
)

var (
	minX     = flag.Float64("minx", -2.0, "Left edge of the viewport (real axis)")
	maxX     = flag.Float64("maxx", 1.0, "Right edge of the viewport (real axis)")
	minY     = flag.Float64("miny", -1.5, "Bottom edge of the viewport (imaginary axis)")
	maxY     = flag.Float64("maxy", 1.5, "Top edge of the viewport (imaginary axis)")
	width    = flag.Int("width", 800, "Grid width in pixels")
	height   = flag.Int("height", 600, "Grid height in pixels")
	iters    = flag.Int("iters", 100, "Iteration budget per point")
	strategy = flag.String("strategy", "simd", "Execution strategy: seq, par or simd")
	lanes    = flag.Int("lanes", 8, "Lane width for the simd strategy (width must divide evenly)")
	workers  = flag.Int("workers", 0, "Worker count for par/simd (0 = GOMAXPROCS)")
	compare  = flag.Bool("compare", false, "Run all three strategies concurrently and verify they agree")
	info     = flag.Bool("info", false, "Print the SIMD dispatch level and exit")
	preview  = flag.Bool("preview", true, "Print an ASCII preview of the field")
)

func main() {
	flag.Parse()

	if *info {
		fmt.Printf("SIMD level: %s, register width: %d bytes, float64 lanes: %d\n",
			hwy.CurrentName(), hwy.CurrentWidth(), hwy.MaxLanes[float64]())
		return
	}

	vp := mandel.Viewport{MinX: *minX, MaxX: *maxX, MinY: *minY, MaxY: *maxY}
	res := mandel.Resolution{Width: *width, Height: *height}

	pool := workerpool.New(*workers)
	defer pool.Close()

	if *compare {
		if err := runCompare(pool, vp, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	grid, elapsed, err := runOne(*strategy, pool, vp, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %dx%d, budget %d, %v (%.1f Mpix/s)\n",
		*strategy, res.Width, res.Height, *iters, elapsed,
		float64(res.Cells())/elapsed.Seconds()/1e6)

	if *preview {
		printPreview(grid, *iters)
	}
}

func runOne(strategy string, pool *workerpool.Pool, vp mandel.Viewport, res mandel.Resolution) (*mandel.Grid[uint32], time.Duration, error) {
	ctx := context.Background()
	start := time.Now()

	var (
		grid *mandel.Grid[uint32]
		err  error
	)
	switch strategy {
	case "seq":
		grid, err = mandel.Sequential[uint32](vp, res, *iters)
	case "par":
		grid, err = mandel.Parallel[uint32](ctx, pool, vp, res, *iters)
	case "simd":
		grid, err = mandel.ParallelVectorized[uint32](ctx, pool, vp, res, *iters, *lanes)
	default:
		return nil, 0, fmt.Errorf("unknown strategy %q (want seq, par or simd)", strategy)
	}
	return grid, time.Since(start), err
}

// runCompare computes the same field with all three strategies at once
// and verifies the grids agree cell for cell.
func runCompare(pool *workerpool.Pool, vp mandel.Viewport, res mandel.Resolution) error {
	g, ctx := errgroup.WithContext(context.Background())

	var seq, par, vec *mandel.Grid[uint32]
	var seqTime, parTime, vecTime time.Duration

	g.Go(func() error {
		start := time.Now()
		var err error
		seq, err = mandel.Sequential[uint32](vp, res, *iters)
		seqTime = time.Since(start)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		par, err = mandel.Parallel[uint32](ctx, pool, vp, res, *iters)
		parTime = time.Since(start)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		vec, err = mandel.ParallelVectorized[uint32](ctx, pool, vp, res, *iters, *lanes)
		vecTime = time.Since(start)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i, want := range seq.Cells() {
		if par.Cells()[i] != want {
			return fmt.Errorf("cell %d: par = %d, seq = %d", i, par.Cells()[i], want)
		}
		if vec.Cells()[i] != want {
			return fmt.Errorf("cell %d: simd = %d, seq = %d", i, vec.Cells()[i], want)
		}
	}

	fmt.Printf("seq   %v\npar   %v\nsimd  %v\n", seqTime, parTime, vecTime)
	fmt.Printf("all strategies agree on %d cells\n", res.Cells())
	return nil
}

const shades = " .:-=+*#%@"

// printPreview downsamples the grid to a terminal-sized character
// raster, one shade per count decile.
func printPreview(grid *mandel.Grid[uint32], budget int) {
	res := grid.Resolution()
	cols := min(res.Width, 96)
	rows := min(res.Height, 32)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		row := r * res.Height / rows
		for c := 0; c < cols; c++ {
			col := c * res.Width / cols
			count := int(grid.At(row, col))
			shade := count * (len(shades) - 1) / budget
			sb.WriteByte(shades[shade])
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}
