package extractor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"texatlas/pkg/config"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func writeSourceImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return p
}

const triangleOBJ = `
v -1 0 -1
v 1 0 -1
v 0 1 -1
vt 0 0
vt 1 0
vt 0.5 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

const cameraJSON = `{
	"position": [0, 0, 5],
	"look_direction": [0, 0, -1],
	"up_direction": [0, 1, 0],
	"fov_horizontal": 90
}`

func TestExtractSingleFrontFacingTriangle(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "mesh.obj", triangleOBJ)
	camPath := writeFile(t, dir, "camera.json", cameraJSON)
	imgPath := writeSourceImage(t, dir, "source.png", 64, 64)

	cfg := config.DefaultConfig()
	cfg.TextureWidth = 16
	cfg.TextureHeight = 16
	cfg.QualityMode = true // atlas starts transparent, so opaque pixels mean copied ones

	ex, err := New(objPath, camPath, imgPath, "", cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	stats, err := ex.Extract()
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if stats.FacesCopied != 1 {
		t.Errorf("FacesCopied = %d, want 1", stats.FacesCopied)
	}
	if stats.BackfacesRemoved != 0 {
		t.Errorf("BackfacesRemoved = %d, want 0", stats.BackfacesRemoved)
	}

	painted := false
	img := ex.Atlas.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a>>8 == 255 {
				painted = true
			}
		}
	}
	if !painted {
		t.Error("expected at least one opaque pixel copied into the atlas")
	}
}

const backFacingOBJ = `
v -1 0 -1
v 1 0 -1
v 0 1 -1
vt 0 0
vt 1 0
vt 0.5 1
vn 0 0 -1
f 1/1/1 2/2/1 3/3/1
`

func TestExtractDiscardsBackFacingTriangle(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "mesh.obj", backFacingOBJ)
	camPath := writeFile(t, dir, "camera.json", cameraJSON)
	imgPath := writeSourceImage(t, dir, "source.png", 64, 64)

	ex, err := New(objPath, camPath, imgPath, "", config.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	stats, err := ex.Extract()
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if stats.BackfacesRemoved != 1 {
		t.Errorf("BackfacesRemoved = %d, want 1", stats.BackfacesRemoved)
	}
	if stats.FacesCopied != 0 {
		t.Errorf("FacesCopied = %d, want 0", stats.FacesCopied)
	}
}

func TestExtractRefinesExistingBaseAtlas(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "mesh.obj", triangleOBJ)
	camPath := writeFile(t, dir, "camera.json", cameraJSON)
	imgPath := writeSourceImage(t, dir, "source.png", 64, 64)
	basePath := writeSourceImage(t, dir, "base.png", 8, 8)

	cfg := config.DefaultConfig()
	cfg.TextureWidth = 16
	cfg.TextureHeight = 16

	ex, err := New(objPath, camPath, imgPath, basePath, cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if ex.Atlas.Width != 16 || ex.Atlas.Height != 16 {
		t.Fatalf("base atlas was not resampled to config dimensions: got %dx%d", ex.Atlas.Width, ex.Atlas.Height)
	}

	if _, err := ex.Extract(); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
}

func TestNewFailsOnMissingMesh(t *testing.T) {
	dir := t.TempDir()
	camPath := writeFile(t, dir, "camera.json", cameraJSON)
	imgPath := writeSourceImage(t, dir, "source.png", 64, 64)

	if _, err := New(filepath.Join(dir, "missing.obj"), camPath, imgPath, "", config.DefaultConfig()); err == nil {
		t.Error("New() error = nil, want error for missing mesh file")
	}
}
