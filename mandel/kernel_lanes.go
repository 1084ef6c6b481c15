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

import "github.com/ajroetker/go-highway/hwy"

// The lane-vectorized kernel keeps the real and imaginary parts of a
// group of points in separate vectors and iterates all lanes with the
// same instruction stream. A mask derived from |z|^2 <= threshold marks
// the lanes that have not diverged yet: only those lanes accumulate
// their count, and the whole group stops as soon as the mask is empty.
//
// A lane that has diverged keeps being squared; its magnitude grows
// monotonically (eventually to +Inf or NaN), so recomputing the mask
// from the current z can never resurrect it.
//
// The configured lane width groups columns for validation and stride;
// inside a group the kernel advances in hardware-native sub-vectors of
// hwy.MaxLanes[float64]() lanes, so the engine runs unchanged on any
// vector width.

// iterateLanes computes escape counts for one native vector block of
// points (xs[i], y). Counts accumulate in float64 lanes, which is exact
// for any representable budget, and are narrowed to T on store.
func iterateLanes[T Counts](dst []T, xs []float64, y float64, budget int, scratch []float64) {
	cx := hwy.LoadSlice(xs)
	cy := hwy.Set(y)
	zx := hwy.Zero[float64]()
	zy := hwy.Zero[float64]()
	counts := hwy.Zero[float64]()
	one := hwy.Set(1.0)
	limit := hwy.Set[float64](divergenceThreshold)

	for step := 0; step < budget; step++ {
		xx := hwy.Mul(zx, zx)
		yy := hwy.Mul(zy, zy)
		live := hwy.LessEqual(hwy.Add(xx, yy), limit)
		if !live.AnyTrue() {
			break
		}
		counts = hwy.Add(counts, hwy.IfThenElseZero(live, one))

		// Same expression order as the scalar kernel: the two paths
		// must agree to the last bit.
		xy := hwy.Mul(zx, zy)
		zx = hwy.Add(hwy.Sub(xx, yy), cx)
		zy = hwy.Add(hwy.Add(xy, xy), cy)
	}

	hwy.Store(counts, scratch)
	for i := range xs {
		dst[i] = T(scratch[i])
	}
}

// fillRowLanes computes one output row lane group by lane group. The
// caller has already validated len(xs) % laneWidth == 0.
func fillRowLanes[T Counts](dst []T, xs []float64, y float64, budget, laneWidth int, scratch []float64) {
	native := hwy.MaxLanes[float64]()
	for group := 0; group < len(xs); group += laneWidth {
		gx := xs[group : group+laneWidth]
		gd := dst[group : group+laneWidth]
		for off := 0; off < laneWidth; off += native {
			end := min(off+native, laneWidth)
			iterateLanes(gd[off:end], gx[off:end], y, budget, scratch)
		}
	}
}
