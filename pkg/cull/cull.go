// Package cull implements the three visibility passes that prune a
// mesh.Scene before rasterization: backface culling (world space),
// frustum culling (post-perspective, per-vertex), and occlusion
// culling (post-perspective, via a software depth buffer).
package cull

import (
	"math"

	"texatlas/pkg/math3d"
	"texatlas/pkg/mesh"
	"texatlas/pkg/pipeline"
	"texatlas/pkg/raster"
)

// Backfaces discards every live face whose normal points away from
// the camera: dot(normal, vertex0 - cameraPos) >= 0. Must run before
// the view transform, while vertex positions are still world-space.
func Backfaces(s *mesh.Scene, cameraPos math3d.Vec3) int {
	removed := 0
	for i, f := range s.Faces {
		if f.Removed {
			continue
		}
		v0, _, _ := s.FacePositions(f)
		n := s.FaceNormal(f)
		pcop := v0.Sub(cameraPos)
		if n.Dot(pcop) >= 0 {
			s.RemoveFace(i)
			removed++
		}
	}
	return removed
}

// Frustum discards every live face with a vertex outside the clip
// volume x,y in [-1,1] and z < 0. Conservative: a face straddling the
// boundary is dropped whole rather than clipped. Must run after the
// perspective transform.
func Frustum(s *mesh.Scene) int {
	removed := 0
	for i, f := range s.Faces {
		if f.Removed {
			continue
		}
		a, b, c := s.FacePositions(f)
		if outOfFrustum(a) || outOfFrustum(b) || outOfFrustum(c) {
			s.RemoveFace(i)
			removed++
		}
	}
	return removed
}

func outOfFrustum(v math3d.Vec3) bool {
	return v.X < -1 || v.X > 1 || v.Y < -1 || v.Y > 1 || v.Z >= 0
}

// Occlusion discards every live face that is hidden behind something
// closer, determined with a software z-buffer rasterized at
// (bufWidth, bufHeight) resolution. A face survives only if all three
// of its vertices lie within threshold (view-space units) of the
// depth recorded at their projected pixel; this tolerance absorbs the
// self-occlusion a discretized buffer would otherwise cause. Must run
// after the perspective transform, before the screen transform (the
// screen mapping here targets the occlusion buffer's own resolution,
// independent of the final output image size).
func Occlusion(s *mesh.Scene, bufWidth, bufHeight int, threshold float64) int {
	w, h := float64(bufWidth), float64(bufHeight)
	toBuffer := func(v math3d.Vec3) math3d.Vec2 {
		sp := pipeline.Screen(v, w, h)
		return math3d.V2(sp.X, sp.Y)
	}

	depth := raster.NewDepthBuffer(bufWidth, bufHeight)
	for _, f := range s.Faces {
		if f.Removed {
			continue
		}
		a, b, c := s.FacePositions(f)
		depth.Draw(raster.DepthTriangle{
			Screen: [3]math3d.Vec2{toBuffer(a), toBuffer(b), toBuffer(c)},
			Depth:  [3]float64{math.Abs(a.Z), math.Abs(b.Z), math.Abs(c.Z)},
		})
	}

	removed := 0
	for i, f := range s.Faces {
		if f.Removed {
			continue
		}
		a, b, c := s.FacePositions(f)
		if isOccluded(depth, toBuffer, a, threshold) ||
			isOccluded(depth, toBuffer, b, threshold) ||
			isOccluded(depth, toBuffer, c, threshold) {
			s.RemoveFace(i)
			removed++
		}
	}
	return removed
}

func isOccluded(depth *raster.DepthBuffer, toBuffer func(math3d.Vec3) math3d.Vec2, v math3d.Vec3, threshold float64) bool {
	p := toBuffer(v)
	recorded := depth.At(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	return recorded < math.Abs(v.Z)-threshold
}
