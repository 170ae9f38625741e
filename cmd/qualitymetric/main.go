// qualitymetric - compares a candidate texture atlas against a
// ground-truth image in CIE-Lab space and reports how close they are.
package main

import (
	"flag"
	"fmt"
	"os"

	"texatlas/pkg/config"
	"texatlas/pkg/quality"
	"texatlas/pkg/texture"
)

var (
	heatmapPath   = flag.String("heatmap", "visual_quality.png", "Path to write the fault heatmap PNG")
	blur          = flag.Bool("blur", true, "Gaussian-blur both images before comparing")
	blurRadius    = flag.Int("blur-radius", 2, "Gaussian blur radius in pixels")
	showIntensity = flag.Bool("intensity", false, "Show fault intensity gradient instead of binary red/black")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "qualitymetric - compare a texture against ground truth\n\n")
		fmt.Fprintf(os.Stderr, "Usage: qualitymetric [options] <ground_truth_image> <texture_image>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(groundTruthPath, texturePath string) error {
	groundTruth, err := texture.Load(groundTruthPath)
	if err != nil {
		return fmt.Errorf("load ground truth: %w", err)
	}

	candidate, err := texture.Load(texturePath)
	if err != nil {
		return fmt.Errorf("load texture: %w", err)
	}

	cfg := config.DefaultConfig()
	cfg.QualityBlur = *blur
	cfg.QualityBlurRadius = *blurRadius
	cfg.QualityShowFaultIntensity = *showIntensity

	report, heatmap, err := quality.Compare(groundTruth, candidate, cfg)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	fmt.Println(report)

	atlas := texture.NewAtlas(heatmap.Bounds().Dx(), heatmap.Bounds().Dy(), true)
	b := heatmap.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			atlas.SetWrapped(x, y, heatmap.At(x, y))
		}
	}
	if err := atlas.SavePNG(*heatmapPath); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	fmt.Printf("wrote %s\n", *heatmapPath)
	return nil
}
