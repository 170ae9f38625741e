// Package extractor orchestrates the full pipeline: load mesh, camera
// and source image, cull and transform the scene, then copy pixels
// into a UV atlas.
package extractor

import (
	"fmt"
	"image"

	"texatlas/pkg/camera"
	"texatlas/pkg/config"
	"texatlas/pkg/cull"
	"texatlas/pkg/math3d"
	"texatlas/pkg/mesh"
	"texatlas/pkg/pipeline"
	"texatlas/pkg/raster"
	"texatlas/pkg/texture"
)

// Extractor owns the loaded scene and textures for a single
// extraction run.
type Extractor struct {
	Scene  *mesh.Scene
	Camera *camera.Camera
	Source image.Image
	Atlas  *texture.Atlas
	Config config.Config
}

// New loads the mesh, camera, source image, and (if basePath is
// non-empty) an existing atlas to refine, and returns a ready-to-run
// Extractor.
func New(objPath, cameraPath, imagePath, basePath string, cfg config.Config) (*Extractor, error) {
	scene, err := mesh.LoadOBJ(objPath)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}

	cam, err := camera.Load(cameraPath)
	if err != nil {
		return nil, fmt.Errorf("load camera: %w", err)
	}

	src, err := texture.Load(imagePath)
	if err != nil {
		return nil, fmt.Errorf("load source image: %w", err)
	}

	var atlas *texture.Atlas
	if basePath != "" {
		atlas, err = texture.NewAtlasFromBase(basePath, cfg.TextureWidth, cfg.TextureHeight, cfg.QualityMode)
		if err != nil {
			return nil, fmt.Errorf("load base atlas: %w", err)
		}
	} else {
		atlas = texture.NewAtlas(cfg.TextureWidth, cfg.TextureHeight, cfg.QualityMode)
	}

	return &Extractor{Scene: scene, Camera: cam, Source: src, Atlas: atlas, Config: cfg}, nil
}

// Stats reports how many faces each stage of Extract removed or
// copied, for progress reporting.
type Stats struct {
	BackfacesRemoved int
	FrustumRemoved   int
	OcclusionRemoved int
	FacesCopied      int
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"backface culled: %d, frustum culled: %d, occlusion culled: %d, faces copied: %d",
		s.BackfacesRemoved, s.FrustumRemoved, s.OcclusionRemoved, s.FacesCopied,
	)
}

// Extract runs the full pipeline in order: backface culling in world
// space, view and perspective transforms, frustum and occlusion
// culling, then the screen transform and UV-atlas pixel copy for every
// surviving face. The source image's aspect ratio drives the
// camera's vertical FOV and the screen transform's target resolution.
func (e *Extractor) Extract() (Stats, error) {
	var stats Stats

	bounds := e.Source.Bounds()
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	aspect := imgW / imgH

	stats.BackfacesRemoved = cull.Backfaces(e.Scene, e.Camera.Position)

	p, err := pipeline.New(e.Camera, aspect)
	if err != nil {
		return stats, fmt.Errorf("build pipeline: %w", err)
	}
	p.ApplyView(e.Scene)
	p.ApplyPerspective(e.Scene)

	stats.FrustumRemoved = cull.Frustum(e.Scene)
	stats.OcclusionRemoved = cull.Occlusion(
		e.Scene, e.Config.DepthBufferWidth, e.Config.DepthBufferHeight, e.Config.OcclusionCullingThreshold,
	)

	texW, texH := float64(e.Config.TextureWidth), float64(e.Config.TextureHeight)

	for _, f := range e.Scene.Faces {
		if f.Removed {
			continue
		}

		a, b, c := e.Scene.FacePositions(f)
		sa := pipeline.Screen(a, imgW, imgH)
		sb := pipeline.Screen(b, imgW, imgH)
		sc := pipeline.Screen(c, imgW, imgH)

		uvA, uvB, uvC := e.Scene.FaceTexCoords(f)

		raster.CopyFace(e.Atlas, e.Source, raster.AtlasFace{
			UV: [3]math3d.Vec2{
				math3d.V2(texW*uvA.X, texH*(1-uvA.Y)),
				math3d.V2(texW*uvB.X, texH*(1-uvB.Y)),
				math3d.V2(texW*uvC.X, texH*(1-uvC.Y)),
			},
			Screen: [3]math3d.Vec2{
				math3d.V2(sa.X, sa.Y),
				math3d.V2(sb.X, sb.Y),
				math3d.V2(sc.X, sc.Y),
			},
		})
		stats.FacesCopied++
	}

	return stats, nil
}
