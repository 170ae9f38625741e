// Package texture loads source photographs and manages the output UV
// atlas: an RGB (or RGBA in quality mode) raster image, optionally
// pre-seeded from a base atlas, that the rasterizer writes sampled
// pixels into.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Load decodes any image the standard library (plus the registered
// JPEG/PNG decoders) can handle.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// Atlas is the output texture: a pixel grid the rasterizer writes
// into, addressed with wrap-around (torus) semantics so UV coordinates
// at or beyond 1.0 land back inside the grid.
type Atlas struct {
	Width, Height int
	RGBA          bool // true: quality-mode RGBA output, false: RGB output written with full alpha
	img           *image.RGBA
}

// NewAtlas creates a blank atlas of the given size, transparent black
// (RGBA mode) or opaque black (RGB mode).
func NewAtlas(width, height int, rgba bool) *Atlas {
	a := &Atlas{Width: width, Height: height, RGBA: rgba, img: image.NewRGBA(image.Rect(0, 0, width, height))}
	if !rgba {
		for i := 3; i < len(a.img.Pix); i += 4 {
			a.img.Pix[i] = 255
		}
	}
	return a
}

// NewAtlasFromBase loads an existing image as the starting point for a
// refinement run, resampling it to (width, height) if its size differs.
func NewAtlasFromBase(path string, width, height int, rgba bool) (*Atlas, error) {
	base, err := Load(path)
	if err != nil {
		return nil, err
	}

	a := NewAtlas(width, height, rgba)
	bounds := base.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		draw.Draw(a.img, a.img.Bounds(), base, bounds.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(a.img, a.img.Bounds(), base, bounds, draw.Src, nil)
	}
	return a, nil
}

// SetWrapped writes a pixel, wrapping (x, y) modulo the atlas
// dimensions first so the atlas behaves as a torus: UV values that
// spilled past 1.0 during rasterization land back inside the grid
// instead of being dropped.
func (a *Atlas) SetWrapped(x, y int, c color.Color) {
	x = wrapIndex(x, a.Width)
	y = wrapIndex(y, a.Height)
	a.img.Set(x, y, c)
}

func wrapIndex(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// Image returns the underlying RGBA image.
func (a *Atlas) Image() *image.RGBA { return a.img }

// SavePNG encodes the atlas as a PNG file.
func (a *Atlas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create atlas file %q: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, a.img); err != nil {
		return fmt.Errorf("encode atlas png: %w", err)
	}
	return nil
}
