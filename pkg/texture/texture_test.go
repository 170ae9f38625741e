package texture

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewAtlasRGBModeIsOpaque(t *testing.T) {
	a := NewAtlas(4, 4, false)
	c := a.Image().At(0, 0)
	_, _, _, alpha := c.RGBA()
	if alpha != 0xffff {
		t.Errorf("RGB-mode atlas pixel alpha = %#x, want fully opaque", alpha)
	}
}

func TestNewAtlasRGBAModeIsTransparent(t *testing.T) {
	a := NewAtlas(4, 4, true)
	c := a.Image().At(0, 0)
	_, _, _, alpha := c.RGBA()
	if alpha != 0 {
		t.Errorf("RGBA-mode atlas pixel alpha = %#x, want fully transparent", alpha)
	}
}

func TestSetWrappedHandlesOutOfRangeCoordinates(t *testing.T) {
	a := NewAtlas(10, 10, false)
	red := color.RGBA{255, 0, 0, 255}

	a.SetWrapped(10, 0, red) // exactly one past width -> wraps to column 0
	got := a.Image().At(0, 0)
	r, g, b, _ := got.RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("SetWrapped(10,0) did not wrap to column 0: got %v", got)
	}

	a.SetWrapped(-1, 0, red) // negative wraps to the last column
	got = a.Image().At(9, 0)
	r, g, b, _ = got.RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("SetWrapped(-1,0) did not wrap to column 9: got %v", got)
	}
}

func TestSavePNGRoundTrips(t *testing.T) {
	a := NewAtlas(2, 2, false)
	a.SetWrapped(0, 0, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := a.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	r, g, b, _ := loaded.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("round-tripped pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestNewAtlasFromBaseResamplesMismatchedSize(t *testing.T) {
	base := NewAtlas(4, 4, false)
	base.SetWrapped(0, 0, color.RGBA{0, 255, 0, 255})
	basePath := filepath.Join(t.TempDir(), "base.png")
	if err := base.SavePNG(basePath); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	a, err := NewAtlasFromBase(basePath, 8, 8, false)
	if err != nil {
		t.Fatalf("NewAtlasFromBase() error = %v", err)
	}
	if a.Width != 8 || a.Height != 8 {
		t.Errorf("resampled atlas size = (%d,%d), want (8,8)", a.Width, a.Height)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(os.TempDir(), "does-not-exist.png")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
