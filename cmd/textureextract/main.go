// textureextract - UV texture atlas extractor
// Projects a photograph onto a mesh's UV layout using a known camera,
// writing the result as a texture atlas image.
package main

import (
	"flag"
	"fmt"
	"os"

	"texatlas/pkg/config"
	"texatlas/pkg/extractor"
)

var (
	outPath       = flag.String("out", "texture.png", "Output atlas PNG path")
	textureWidth  = flag.Int("width", 1024, "Atlas width in pixels")
	textureHeight = flag.Int("height", 1024, "Atlas height in pixels")
	qualityMode   = flag.Bool("quality", false, "Write an RGBA atlas instead of RGB")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textureextract - UV texture atlas extractor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textureextract [options] <mesh.obj> <camera.json> <photo> [<base_atlas>]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 && flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}

	objPath := flag.Arg(0)
	cameraPath := flag.Arg(1)
	imagePath := flag.Arg(2)
	basePath := ""
	if flag.NArg() == 4 {
		basePath = flag.Arg(3)
	}

	if err := run(objPath, cameraPath, imagePath, basePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(objPath, cameraPath, imagePath, basePath string) error {
	cfg := config.DefaultConfig()
	cfg.TextureWidth = *textureWidth
	cfg.TextureHeight = *textureHeight
	cfg.QualityMode = *qualityMode

	ex, err := extractor.New(objPath, cameraPath, imagePath, basePath, cfg)
	if err != nil {
		return fmt.Errorf("prepare extraction: %w", err)
	}

	stats, err := ex.Extract()
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	fmt.Println(stats)

	if err := ex.Atlas.SavePNG(*outPath); err != nil {
		return fmt.Errorf("save atlas: %w", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
	return nil
}
