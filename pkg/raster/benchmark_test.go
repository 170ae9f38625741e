package raster

import (
	"testing"

	"texatlas/pkg/math3d"
)

func BenchmarkBarycentric(b *testing.B) {
	a := math3d.V2(0, 0)
	bb := math3d.V2(100, 0)
	c := math3d.V2(50, 100)
	p := math3d.V2(40, 30)

	for b.Loop() {
		_, _, _, _ = Barycentric(a, bb, c, p)
	}
}

func BenchmarkTriangleArea(b *testing.B) {
	a := math3d.V2(0, 0)
	bb := math3d.V2(100, 0)
	c := math3d.V2(50, 100)

	for b.Loop() {
		_ = TriangleArea(a, bb, c)
	}
}

func BenchmarkDepthBufferDraw(b *testing.B) {
	d := NewDepthBuffer(256, 256)
	tri := DepthTriangle{
		Screen: [3]math3d.Vec2{math3d.V2(10, 10), math3d.V2(200, 20), math3d.V2(100, 230)},
		Depth:  [3]float64{1, 2, 3},
	}

	for b.Loop() {
		d.Draw(tri)
	}
}
