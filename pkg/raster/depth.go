package raster

import (
	"math"

	"texatlas/pkg/math3d"
)

// DepthTriangle is a single triangle already projected onto the
// occlusion buffer's pixel grid, carrying the absolute view-space
// depth at each corner as the attribute to be interpolated and
// min-reduced into the buffer.
type DepthTriangle struct {
	Screen [3]math3d.Vec2 // buffer-pixel coordinates
	Depth  [3]float64     // |view-space z| at each corner
}

// DepthBuffer is a fixed-resolution min-depth grid used by occlusion
// culling: for every pixel it records the smallest depth written by
// any triangle that covers it.
type DepthBuffer struct {
	Width, Height int
	Z             []float64
}

// NewDepthBuffer allocates a depth buffer initialized to +Inf
// (nothing drawn yet).
func NewDepthBuffer(width, height int) *DepthBuffer {
	z := make([]float64, width*height)
	for i := range z {
		z[i] = math.Inf(1)
	}
	return &DepthBuffer{Width: width, Height: height, Z: z}
}

// At returns the recorded depth at (x, y), or +Inf if out of range.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.Z[y*d.Width+x]
}

// Draw rasterizes one triangle into the buffer, keeping the minimum
// depth at each covered pixel. Degenerate (zero-area) triangles are
// skipped.
func (d *DepthBuffer) Draw(t DepthTriangle) {
	a, b, c := t.Screen[0], t.Screen[1], t.Screen[2]
	area := TriangleArea(a, b, c)
	if area == 0 {
		return
	}

	minX, minY, maxX, maxY := BoundingBox(a, b, c)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > d.Width-1 {
		maxX = d.Width - 1
	}
	if maxY > d.Height-1 {
		maxY = d.Height - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math3d.V2(float64(x)+0.5, float64(y)+0.5)
			alpha, beta, gamma, _ := Barycentric(a, b, c, p)
			if !Inside(alpha, beta, gamma) {
				continue
			}
			z := alpha*t.Depth[0] + beta*t.Depth[1] + gamma*t.Depth[2]
			idx := y*d.Width + x
			if z < d.Z[idx] {
				d.Z[idx] = z
			}
		}
	}
}
