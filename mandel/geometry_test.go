// Copyright 2026 mandelgrid Authors. SPDX-License-Identifier: Apache-2.0

package mandel

import (
	"errors"
	"math"
	"testing"
)

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		name    string
		vp      Viewport
		wantErr bool
	}{
		{"classic window", Viewport{-2.0, 1.0, -1.5, 1.5}, false},
		{"tiny span", Viewport{0, 1e-9, 0, 1e-9}, false},
		{"zero X span", Viewport{1, 1, 0, 1}, true},
		{"negative X span", Viewport{1, 0, 0, 1}, true},
		{"zero Y span", Viewport{0, 1, 2, 2}, true},
		{"negative Y span", Viewport{0, 1, 2, 1}, true},
		{"NaN bound", Viewport{math.NaN(), 1, 0, 1}, true},
		{"infinite bound", Viewport{0, math.Inf(1), 0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vp.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestResolutionValidate(t *testing.T) {
	tests := []struct {
		name    string
		res     Resolution
		wantErr bool
	}{
		{"800x600", Resolution{800, 600}, false},
		{"1x1", Resolution{1, 1}, false},
		{"zero width", Resolution{0, 600}, true},
		{"zero height", Resolution{800, 0}, true},
		{"negative width", Resolution{-1, 600}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.res.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPointAtCorners(t *testing.T) {
	vp := Viewport{-2.0, 1.0, -1.5, 1.5}
	res := Resolution{800, 600}

	x, y := PointAt(0, 0, vp, res)
	if x != vp.MinX || y != vp.MinY {
		t.Errorf("PointAt(0,0) = (%v, %v), want (%v, %v)", x, y, vp.MinX, vp.MinY)
	}

	dx, dy := Steps(vp, res)
	x, y = PointAt(1, 1, vp, res)
	if x != vp.MinX+dx || y != vp.MinY+dy {
		t.Errorf("PointAt(1,1) = (%v, %v), want (%v, %v)", x, y, vp.MinX+dx, vp.MinY+dy)
	}
}

// The mapping must be affine: adjacent columns differ by exactly dx and
// adjacent rows by exactly dy, within float64 tolerance.
func TestPointAtAffine(t *testing.T) {
	vp := Viewport{-2.0, 1.0, -1.5, 1.5}
	res := Resolution{64, 48}
	dx, dy := Steps(vp, res)

	const tol = 1e-12
	for row := 0; row < res.Height; row++ {
		for col := 0; col < res.Width-1; col++ {
			x0, _ := PointAt(row, col, vp, res)
			x1, _ := PointAt(row, col+1, vp, res)
			if math.Abs((x1-x0)-dx) > tol {
				t.Fatalf("col step at (%d,%d) = %v, want %v", row, col, x1-x0, dx)
			}
		}
	}
	for row := 0; row < res.Height-1; row++ {
		_, y0 := PointAt(row, 0, vp, res)
		_, y1 := PointAt(row+1, 0, vp, res)
		if math.Abs((y1-y0)-dy) > tol {
			t.Fatalf("row step at row %d = %v, want %v", row, y1-y0, dy)
		}
	}
}

func TestPointAtDeterministic(t *testing.T) {
	vp := Viewport{-0.75, -0.73, 0.1, 0.12}
	res := Resolution{256, 256}

	for _, rc := range [][2]int{{0, 0}, {17, 42}, {255, 255}} {
		x0, y0 := PointAt(rc[0], rc[1], vp, res)
		x1, y1 := PointAt(rc[0], rc[1], vp, res)
		if x0 != x1 || y0 != y1 {
			t.Errorf("PointAt(%d,%d) not stable: (%v,%v) then (%v,%v)", rc[0], rc[1], x0, y0, x1, y1)
		}
	}
}

func TestColumnCoordsMatchPointAt(t *testing.T) {
	vp := Viewport{-2.0, 1.0, -1.5, 1.5}
	res := Resolution{100, 50}

	xs := columnCoords(vp, res)
	if len(xs) != res.Width {
		t.Fatalf("len(columnCoords) = %d, want %d", len(xs), res.Width)
	}
	for col, x := range xs {
		want, _ := PointAt(0, col, vp, res)
		if x != want {
			t.Errorf("columnCoords[%d] = %v, PointAt = %v", col, x, want)
		}
	}
}
