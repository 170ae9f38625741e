package quality

import (
	"image"
	"image/color"
	"math"
)

// gaussianBlur applies a separable Gaussian blur: one horizontal pass
// followed by one vertical pass, each a 1D convolution against a
// kernel sized by radius. Two 1D passes over a (2*radius+1) kernel
// replace a single 2D convolution at the same result, the same
// horizontal-then-vertical split a two-pass GPU blur shader uses.
func gaussianBlur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return img
	}
	kernel := gaussianKernel(radius)
	h := convolveHorizontal(img, kernel)
	return convolveVertical(h, kernel)
}

func gaussianKernel(radius int) []float64 {
	sigma := float64(radius) / 2
	if sigma <= 0 {
		sigma = 1
	}
	size := 2*radius + 1
	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		v := math.Exp(-(x * x) / (2 * sigma * sigma))
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolveHorizontal(img *image.RGBA, kernel []float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	radius := len(kernel) / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b, a float64
			for k, w := range kernel {
				sx := clampInt(x+k-radius, bounds.Min.X, bounds.Max.X-1)
				sr, sg, sb, sa := img.At(sx, y).RGBA()
				r += float64(sr>>8) * w
				g += float64(sg>>8) * w
				b += float64(sb>>8) * w
				a += float64(sa>>8) * w
			}
			out.Set(x, y, color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)})
		}
	}
	return out
}

func convolveVertical(img *image.RGBA, kernel []float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	radius := len(kernel) / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b, a float64
			for k, w := range kernel {
				sy := clampInt(y+k-radius, bounds.Min.Y, bounds.Max.Y-1)
				sr, sg, sb, sa := img.At(x, sy).RGBA()
				r += float64(sr>>8) * w
				g += float64(sg>>8) * w
				b += float64(sb>>8) * w
				a += float64(sa>>8) * w
			}
			out.Set(x, y, color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)})
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
