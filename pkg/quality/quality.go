// Package quality compares a ground-truth photograph against an
// extracted (or hand-authored) atlas texture and reports how close
// they are perceptually, in CIE-Lab space.
package quality

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"texatlas/pkg/config"
)

// maxLabDistance is the greatest possible CIE76 ΔE between two colors
// in the L*a*b* gamut this package operates in: L spans [0,100], a and
// b each span roughly [-128,127], approximated here the same way the
// source this was derived from bounds it, against (100, 255, 255).
var maxLabDistance = math.Sqrt(100*100 + 255*255 + 255*255)

// Report holds the five statistics printed for a comparison run.
type Report struct {
	TotalDistance   float64
	PixelCount      int
	AverageDistance float64
	AverageRatio    float64
	BadPixelRatio   float64
}

func (r Report) String() string {
	return fmt.Sprintf(
		"total distance: %.4f\npixel count: %d\naverage distance: %.4f\naverage ratio: %.4f\nbad pixel ratio: %.4f",
		r.TotalDistance, r.PixelCount, r.AverageDistance, r.AverageRatio, r.BadPixelRatio,
	)
}

// badPixelThreshold flags any pixel whose distance exceeds this
// fraction of the maximum possible distance.
const badPixelThreshold = 0.05

// Compare measures the perceptual difference between groundTruth and
// candidate, resampling candidate to groundTruth's size first if they
// differ. The candidate is alpha-composited over the ground truth
// before either image is (optionally) Gaussian-blurred, so the blur
// pass never smears in the transparent background of an unpainted
// atlas region. Pixels where the candidate's original alpha is 0 (not
// part of the extracted texture) are excluded from every statistic.
// It returns the Report and a heatmap image flagging pixels whose
// distance exceeds badPixelThreshold of the maximum possible distance.
func Compare(groundTruth, candidate image.Image, cfg config.Config) (Report, *image.RGBA, error) {
	gt := toRGBA(groundTruth)
	candRaw := resampleToMatch(toRGBA(candidate), gt.Bounds())

	composited := image.NewRGBA(gt.Bounds())
	draw.Draw(composited, composited.Bounds(), gt, gt.Bounds().Min, draw.Src)
	draw.Draw(composited, composited.Bounds(), candRaw, candRaw.Bounds().Min, draw.Over)

	blurredGT := gt
	blurredCand := composited
	if cfg.QualityBlur {
		blurredGT = gaussianBlur(gt, cfg.QualityBlurRadius)
		blurredCand = gaussianBlur(composited, cfg.QualityBlurRadius)
	}

	bounds := gt.Bounds()
	heatmap := image.NewRGBA(bounds)

	var total float64
	var badCount int
	count := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := candRaw.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			count++

			d := labDistance(blurredGT.At(x, y), blurredCand.At(x, y))
			total += d
			ratio := d / maxLabDistance

			if ratio > badPixelThreshold {
				badCount++
				heatmap.Set(x, y, faultColor(ratio, cfg.QualityShowFaultIntensity))
			} else {
				heatmap.Set(x, y, color.Black)
			}
		}
	}

	if count == 0 {
		return Report{}, heatmap, fmt.Errorf("quality: candidate has no opaque pixels to compare")
	}

	avg := total / float64(count)
	report := Report{
		TotalDistance:   total,
		PixelCount:      count,
		AverageDistance: avg,
		AverageRatio:    avg / maxLabDistance,
		BadPixelRatio:   float64(badCount) / float64(count),
	}
	return report, heatmap, nil
}

func faultColor(ratio float64, showIntensity bool) color.Color {
	if !showIntensity {
		return color.RGBA{255, 0, 0, 255}
	}
	intensity := uint8(math.Min(1, math.Sqrt(ratio)) * 255)
	return color.RGBA{intensity, 0, 0, 255}
}

func labDistance(a, b color.Color) float64 {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	// go-colorful scales L*a*b* by 1/100; rescale to CIE76 ΔE units.
	return ca.DistanceLab(cb) * 100
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func resampleToMatch(img *image.RGBA, target image.Rectangle) *image.RGBA {
	if img.Bounds().Dx() == target.Dx() && img.Bounds().Dy() == target.Dy() {
		return img
	}
	out := image.NewRGBA(target)
	draw.BiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}
