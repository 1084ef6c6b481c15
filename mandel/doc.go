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

// Package mandel computes escape-time fractal fields: one Mandelbrot
// iteration count per pixel over a rectangular window of the complex
// plane.
//
// Three strategies produce bit-identical grids and differ only in
// throughput:
//
//	grid, err := mandel.Sequential[uint32](vp, res, 256)
//	grid, err := mandel.Parallel[uint32](ctx, pool, vp, res, 256)
//	grid, err := mandel.ParallelVectorized[uint32](ctx, pool, vp, res, 256, 8)
//
// The parallel strategies partition output rows into disjoint contiguous
// groups, one group per task, so no two tasks ever touch the same cell
// and no locking is needed. The vectorized strategy additionally iterates
// lane groups of points together using github.com/ajroetker/go-highway/hwy
// vector operations, with a per-lane divergence mask.
//
// The count type is a generic parameter (uint8, uint16 or uint32); a
// budget that does not fit the chosen type is rejected up front with an
// *OverflowError rather than silently wrapped.
package mandel
