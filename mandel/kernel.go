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

// divergenceThreshold is the squared-magnitude bound. Testing |z|^2
// against 4.0 avoids a square root per step.
const divergenceThreshold = 4.0

// escapeCount iterates z <- z^2 + c from z = 0 and returns the 1-indexed
// step at which |z|^2 first exceeds the threshold, or budget if the point
// never diverges within the budget.
//
// The update is written as (xx-yy)+cx and (xy+xy)+cy, in that exact
// order, so the lane-vectorized kernel can reproduce it bit for bit.
func escapeCount(cx, cy float64, budget int) int {
	var zx, zy float64
	for step := 0; step < budget; step++ {
		xx := zx * zx
		yy := zy * zy
		if xx+yy > divergenceThreshold {
			return step
		}
		xy := zx * zy
		zx = (xx - yy) + cx
		zy = (xy + xy) + cy
	}
	return budget
}

// fillRowScalar computes one output row with the scalar kernel. Every
// column of dst is written.
func fillRowScalar[T Counts](dst []T, xs []float64, y float64, budget int) {
	for col, x := range xs {
		dst[col] = T(escapeCount(x, y, budget))
	}
}
