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

import "math"

// Viewport is the rectangular region of the complex plane being sampled.
// The X axis is the real axis and the Y axis the imaginary axis. Both
// spans must be positive and all bounds finite.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Validate reports whether the viewport is usable. A zero or negative
// span, or a non-finite bound, yields a *ConfigError.
func (v Viewport) Validate() error {
	for _, b := range [4]float64{v.MinX, v.MaxX, v.MinY, v.MaxY} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return configErrorf("viewport bound %v is not finite", b)
		}
	}
	if v.MaxX <= v.MinX {
		return configErrorf("viewport X span [%v, %v] is degenerate", v.MinX, v.MaxX)
	}
	if v.MaxY <= v.MinY {
		return configErrorf("viewport Y span [%v, %v] is degenerate", v.MinY, v.MaxY)
	}
	return nil
}

// Resolution is the pixel dimensions of the output grid.
type Resolution struct {
	Width, Height int
}

// Validate reports whether both dimensions are positive.
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return configErrorf("resolution %dx%d is not positive", r.Width, r.Height)
	}
	return nil
}

// Cells returns the total number of grid cells, Width*Height.
func (r Resolution) Cells() int {
	return r.Width * r.Height
}

// Steps returns the per-pixel increments dx = (MaxX-MinX)/Width and
// dy = (MaxY-MinY)/Height.
func Steps(vp Viewport, res Resolution) (dx, dy float64) {
	dx = (vp.MaxX - vp.MinX) / float64(res.Width)
	dy = (vp.MaxY - vp.MinY) / float64(res.Height)
	return dx, dy
}

// PointAt maps pixel (row, col) to its complex-plane sample point
// (MinX + dx*col, MinY + dy*row). The mapping is pure: the same pixel
// always maps to the same point for a given viewport and resolution,
// and adjacent pixels differ by exactly dx or dy.
func PointAt(row, col int, vp Viewport, res Resolution) (x, y float64) {
	dx, dy := Steps(vp, res)
	return vp.MinX + dx*float64(col), vp.MinY + dy*float64(row)
}

// columnCoords computes the real coordinate of every pixel column once
// per call. The rows all share the same X positions, so every row task
// reads this slice without copying it.
func columnCoords(vp Viewport, res Resolution) []float64 {
	dx, _ := Steps(vp, res)
	xs := make([]float64, res.Width)
	for col := range xs {
		xs[col] = vp.MinX + dx*float64(col)
	}
	return xs
}
