package raster

import (
	"image"
	"math"

	"texatlas/pkg/math3d"
	"texatlas/pkg/texture"
)

// AtlasFace carries everything one visible face needs for the
// UV-to-image pixel copy pass: its three corners' UV-atlas pixel
// coordinates (texture_width*u, texture_height*(1-v), not yet
// wrapped) and their image-space screen coordinates (the face's
// on-screen position after the full view/perspective/screen
// transform, used only for x and y).
type AtlasFace struct {
	UV     [3]math3d.Vec2
	Screen [3]math3d.Vec2
}

// CopyFace rasterizes one face's UV-atlas triangle and, for every
// covered atlas pixel, samples the corresponding source-image pixel
// by barycentric interpolation of the face's screen-space corners,
// then writes it into the atlas with wrap-around addressing. Atlas
// pixels beyond [0, width) x [0, height) (UV >= 1 or < 0) still get
// iterated and are wrapped on write, so the atlas behaves as a torus.
func CopyFace(atlas *texture.Atlas, src image.Image, f AtlasFace) {
	uvA, uvB, uvC := f.UV[0], f.UV[1], f.UV[2]
	area := TriangleArea(uvA, uvB, uvC)
	if area == 0 {
		return
	}

	minX, minY, maxX, maxY := BoundingBox(uvA, uvB, uvC)

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math3d.V2(float64(x)+0.5, float64(y)+0.5)
			alpha, beta, gamma, _ := Barycentric(uvA, uvB, uvC, p)
			if !Inside(alpha, beta, gamma) {
				continue
			}

			sx := alpha*f.Screen[0].X + beta*f.Screen[1].X + gamma*f.Screen[2].X
			sy := alpha*f.Screen[0].Y + beta*f.Screen[1].Y + gamma*f.Screen[2].Y
			ix := int(math.Floor(sx))
			iy := int(math.Floor(sy))
			if ix < 0 {
				ix = 0
			} else if ix >= srcW {
				ix = srcW - 1
			}
			if iy < 0 {
				iy = 0
			} else if iy >= srcH {
				iy = srcH - 1
			}

			c := src.At(bounds.Min.X+ix, bounds.Min.Y+iy)
			atlas.SetWrapped(x, y, c)
		}
	}
}
