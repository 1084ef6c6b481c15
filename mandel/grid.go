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

// Counts is the constraint for grid cell types. One count type is used
// by every strategy; there is no narrow path and wide path.
type Counts interface {
	~uint8 | ~uint16 | ~uint32
}

// maxCount returns the largest value representable by T.
func maxCount[T Counts]() uint64 {
	return uint64(^T(0))
}

// Grid is a finished escape-time field: Width*Height counts in row-major
// order, every cell in [0, budget]. Grids are only built by the compute
// functions, which write every cell of every row before handing the grid
// back; a returned grid is always fully populated.
type Grid[T Counts] struct {
	res   Resolution
	cells []T
}

func newGrid[T Counts](res Resolution) *Grid[T] {
	return &Grid[T]{res: res, cells: make([]T, res.Cells())}
}

// Resolution returns the grid's pixel dimensions.
func (g *Grid[T]) Resolution() Resolution {
	return g.res
}

// At returns the count at pixel (row, col).
func (g *Grid[T]) At(row, col int) T {
	return g.cells[row*g.res.Width+col]
}

// Row returns the row-th row as a slice aliasing the grid's storage.
func (g *Grid[T]) Row(row int) []T {
	return g.cells[row*g.res.Width : (row+1)*g.res.Width]
}

// Cells returns the whole grid as a flat row-major slice aliasing the
// grid's storage.
func (g *Grid[T]) Cells() []T {
	return g.cells
}
