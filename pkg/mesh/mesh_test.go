package mesh

import (
	"testing"

	"texatlas/pkg/math3d"
)

func triangleScene() *Scene {
	return NewScene(
		[]Vertex{
			{Position: math3d.V3(0, 0, 0)},
			{Position: math3d.V3(1, 0, 0)},
			{Position: math3d.V3(0, 1, 0)},
			{Position: math3d.V3(2, 2, 2)}, // shared by no face, orphan from the start
		},
		[]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)},
		[]math3d.Vec3{math3d.V3(0, 0, 1)},
		[]Face{
			{V: [3]int{0, 1, 2}, VT: [3]int{0, 1, 2}, VN: 0},
		},
	)
}

func TestNewSceneMarksUnreferencedVerticesRemoved(t *testing.T) {
	s := triangleScene()
	if !s.Vertices[3].Removed {
		t.Error("vertex referenced by no face should start Removed")
	}
	if s.Vertices[0].Removed || s.Vertices[1].Removed || s.Vertices[2].Removed {
		t.Error("vertices referenced by a live face should not start Removed")
	}
	if got := s.ActiveVertexCount(); got != 3 {
		t.Errorf("ActiveVertexCount() = %d, want 3", got)
	}
}

func TestRemoveFacePrunesOrphanedVertices(t *testing.T) {
	s := triangleScene()
	s.RemoveFace(0)

	if !s.Faces[0].Removed {
		t.Error("RemoveFace should mark the face Removed")
	}
	for i, v := range s.Vertices[:3] {
		if !v.Removed {
			t.Errorf("vertex %d should be pruned once its only face is removed", i)
		}
	}
	if got := s.ActiveFaceCount(); got != 0 {
		t.Errorf("ActiveFaceCount() = %d, want 0", got)
	}
}

func TestRemoveFaceIsIdempotent(t *testing.T) {
	s := triangleScene()
	s.RemoveFace(0)
	s.RemoveFace(0) // must not double-decrement faceCount
	for i, v := range s.Vertices[:3] {
		if !v.Removed {
			t.Errorf("vertex %d should be pruned", i)
		}
	}
}

func TestFaceAccessorsReturnCorrectCorners(t *testing.T) {
	s := triangleScene()
	f := s.Faces[0]

	a, b, c := s.FacePositions(f)
	if a != s.Vertices[0].Position || b != s.Vertices[1].Position || c != s.Vertices[2].Position {
		t.Errorf("FacePositions returned unexpected corners: %v %v %v", a, b, c)
	}

	ta, tb, tc := s.FaceTexCoords(f)
	if ta != s.TexCoords[0] || tb != s.TexCoords[1] || tc != s.TexCoords[2] {
		t.Errorf("FaceTexCoords returned unexpected corners: %v %v %v", ta, tb, tc)
	}

	if n := s.FaceNormal(f); n != s.Normals[0] {
		t.Errorf("FaceNormal() = %v, want %v", n, s.Normals[0])
	}
}

func TestSharedVertexSurvivesPartialRemoval(t *testing.T) {
	// Two faces sharing vertex 1; removing only one face should keep
	// vertex 1 alive.
	s := NewScene(
		[]Vertex{
			{Position: math3d.V3(0, 0, 0)},
			{Position: math3d.V3(1, 0, 0)},
			{Position: math3d.V3(0, 1, 0)},
			{Position: math3d.V3(1, 1, 0)},
		},
		[]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1), math3d.V2(1, 1)},
		[]math3d.Vec3{math3d.V3(0, 0, 1)},
		[]Face{
			{V: [3]int{0, 1, 2}, VT: [3]int{0, 1, 2}, VN: 0},
			{V: [3]int{1, 3, 2}, VT: [3]int{1, 3, 2}, VN: 0},
		},
	)
	s.RemoveFace(0)
	if s.Vertices[1].Removed {
		t.Error("vertex 1 is still referenced by face 1 and should not be pruned")
	}
	if !s.Vertices[0].Removed {
		t.Error("vertex 0 was only referenced by face 0 and should be pruned")
	}
}
