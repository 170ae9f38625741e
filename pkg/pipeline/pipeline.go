// Package pipeline implements the geometric transform stack that
// carries mesh vertices from world space, through the camera's view,
// into normalized clip coordinates, and finally onto a pixel grid:
// view transform, perspective transform, and screen transform.
package pipeline

import (
	"math"

	"texatlas/pkg/camera"
	"texatlas/pkg/math3d"
	"texatlas/pkg/mesh"
)

// Pipeline holds the camera-derived state the view and perspective
// transforms need: the camera's basis and position, and its
// horizontal/vertical field of view.
type Pipeline struct {
	camPos math3d.Vec3
	view   math3d.Mat4 // rotation-only: rows are u, v, w

	tanHalfFovH float64
	tanHalfFovV float64
}

// New derives a Pipeline from a validated camera and the image aspect
// ratio (width/height) the final render targets.
func New(cam *camera.Camera, aspectRatio float64) (*Pipeline, error) {
	u, v, w, err := cam.Basis()
	if err != nil {
		return nil, err
	}

	var rot math3d.Mat4
	rot.Set(0, 0, u.X)
	rot.Set(0, 1, u.Y)
	rot.Set(0, 2, u.Z)
	rot.Set(1, 0, v.X)
	rot.Set(1, 1, v.Y)
	rot.Set(1, 2, v.Z)
	rot.Set(2, 0, w.X)
	rot.Set(2, 1, w.Y)
	rot.Set(2, 2, w.Z)
	rot.Set(3, 3, 1)

	fovV := cam.VerticalFOV(aspectRatio)

	return &Pipeline{
		camPos:      cam.Position,
		view:        rot,
		tanHalfFovH: math.Tan(cam.FovHorizontalRadians() / 2),
		tanHalfFovV: math.Tan(fovV / 2),
	}, nil
}

// ApplyView translates every live vertex by -camera position and
// rotates it into the camera's (u, v, w) frame, in place. Normals get
// only the rotation, never the translation, since a direction has no
// position to offset.
func (p *Pipeline) ApplyView(s *mesh.Scene) {
	translate := math3d.Translate(p.camPos.Negate())
	m := p.view.Mul(translate)
	for i := range s.Vertices {
		if s.Vertices[i].Removed {
			continue
		}
		s.Vertices[i].Position = m.MulVec3(s.Vertices[i].Position)
	}
	for i := range s.Normals {
		s.Normals[i] = p.view.MulVec3Dir(s.Normals[i])
	}
}

// ApplyPerspective normalizes each live vertex's x and y into [-1, 1]
// by dividing by tan(fov/2)*|z|, while deliberately leaving z in
// view-space units so occlusion culling can still compare absolute
// depth afterwards. A vertex exactly on the camera plane (z == 0) maps
// to (0, 0) to avoid a division by zero.
func (p *Pipeline) ApplyPerspective(s *mesh.Scene) {
	for i := range s.Vertices {
		if s.Vertices[i].Removed {
			continue
		}
		pos := s.Vertices[i].Position
		if pos.Z == 0 {
			s.Vertices[i].Position = math3d.V3(0, 0, 0)
			continue
		}
		absZ := math.Abs(pos.Z)
		s.Vertices[i].Position = math3d.V3(
			pos.X/(p.tanHalfFovH*absZ),
			pos.Y/(p.tanHalfFovV*absZ),
			pos.Z,
		)
	}
}

// Screen maps a perspective-space (x, y) in [-1, 1] to pixel
// coordinates of a width x height grid, flipping y since pixel rows
// grow downward. z passes through unchanged. This is a pure function,
// not a Scene mutation, because the same perspective-space geometry is
// screen-mapped twice at different resolutions: once onto the
// occlusion depth buffer, once onto the output image/atlas grid.
func Screen(pos math3d.Vec3, width, height float64) math3d.Vec3 {
	return math3d.V3(
		(pos.X+1)*0.5*width,
		height-(pos.Y+1)*0.5*height,
		pos.Z,
	)
}
