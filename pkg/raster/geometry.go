// Package raster implements the two rasterization passes shared by
// occlusion culling and pixel copy: a signed-area barycentric
// triangle test over an integer bounding box, used once to build a
// depth buffer and once to copy UV-atlas pixels from a source image.
package raster

import (
	"math"

	"texatlas/pkg/math3d"
)

// TriangleArea returns the signed area of the triangle (a, b, c).
// Its sign encodes winding order; callers that need an unsigned
// comparison (degenerate-triangle checks) compare against zero, not
// against an absolute value, since the winding is still meaningful for
// the barycentric weights computed from it.
func TriangleArea(a, b, c math3d.Vec2) float64 {
	return 0.5 * ((a.X-c.X)*(b.Y-c.Y) - (a.Y-c.Y)*(b.X-c.X))
}

// Barycentric returns the barycentric weights of point p with respect
// to triangle (a, b, c), along with the triangle's signed area. alpha
// weights a, beta weights b, gamma weights c; all three are
// non-negative iff p lies inside (or on the boundary of) the triangle.
func Barycentric(a, b, c, p math3d.Vec2) (alpha, beta, gamma, area float64) {
	area = TriangleArea(a, b, c)
	w23 := TriangleArea(b, c, p)
	w31 := TriangleArea(c, a, p)
	w12 := TriangleArea(a, b, p)
	return w23 / area, w31 / area, w12 / area, area
}

// BoundingBox returns the integer pixel bounding box of triangle
// (a, b, c): floor of the minimum corner, ceil of the maximum corner.
func BoundingBox(a, b, c math3d.Vec2) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(min3(a.X, b.X, c.X)))
	minY = int(math.Floor(min3(a.Y, b.Y, c.Y)))
	maxX = int(math.Ceil(max3(a.X, b.X, c.X)))
	maxY = int(math.Ceil(max3(a.Y, b.Y, c.Y)))
	return
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// Inside reports whether barycentric weights place a point inside (or
// on the edge of) the triangle they were computed from.
func Inside(alpha, beta, gamma float64) bool {
	return alpha >= 0 && beta >= 0 && gamma >= 0
}
