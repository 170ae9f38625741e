// Package mesh provides the scene data model loaded from OBJ files:
// vertices, texture coordinates, normals and faces, plus the adjacency
// bookkeeping the cullers need to prune orphaned vertices as faces are
// discarded.
package mesh

import (
	"fmt"

	"texatlas/pkg/math3d"
)

// Vertex is a 3D position. Removed marks a vertex that is no longer
// referenced by any face, set by Scene.RemoveFace once its last face
// is gone.
type Vertex struct {
	Position math3d.Vec3
	Removed  bool
}

// Face is always a triangle: three vertex indices, three per-corner
// texture-coordinate indices, and a single shared normal index.
type Face struct {
	V       [3]int // indices into Scene.Vertices
	VT      [3]int // indices into Scene.TexCoords
	VN      int    // index into Scene.Normals, shared by all three corners
	Removed bool
}

// Scene holds the loaded mesh and tracks, for each vertex, how many
// live faces still reference it. This replaces a vertex->face
// adjacency list: removing a face only needs to decrement a count,
// never walk or mutate a shared list while iterating it.
type Scene struct {
	Vertices  []Vertex
	TexCoords []math3d.Vec2
	Normals   []math3d.Vec3
	Faces     []Face

	faceCount []int
}

// NewScene builds a Scene from already-parsed geometry and computes
// the initial face-count table.
func NewScene(vertices []Vertex, texCoords []math3d.Vec2, normals []math3d.Vec3, faces []Face) *Scene {
	s := &Scene{
		Vertices:  vertices,
		TexCoords: texCoords,
		Normals:   normals,
		Faces:     faces,
	}
	s.rebuildFaceCount()
	return s
}

func (s *Scene) rebuildFaceCount() {
	s.faceCount = make([]int, len(s.Vertices))
	for _, f := range s.Faces {
		if f.Removed {
			continue
		}
		for _, vi := range f.V {
			s.faceCount[vi]++
		}
	}
	for i := range s.Vertices {
		s.Vertices[i].Removed = s.faceCount[i] == 0
	}
}

// RemoveFace discards face i and prunes any vertex whose last
// reference was this face. Safe to call while ranging over
// s.Faces by index (it never reslices Faces or Vertices).
func (s *Scene) RemoveFace(i int) {
	f := &s.Faces[i]
	if f.Removed {
		return
	}
	f.Removed = true
	for _, vi := range f.V {
		s.faceCount[vi]--
		if s.faceCount[vi] <= 0 {
			s.Vertices[vi].Removed = true
		}
	}
}

// ActiveFaceCount returns the number of faces not yet removed.
func (s *Scene) ActiveFaceCount() int {
	n := 0
	for _, f := range s.Faces {
		if !f.Removed {
			n++
		}
	}
	return n
}

// ActiveVertexCount returns the number of vertices still referenced
// by at least one live face.
func (s *Scene) ActiveVertexCount() int {
	n := 0
	for _, v := range s.Vertices {
		if !v.Removed {
			n++
		}
	}
	return n
}

// FacePositions returns the world-space positions of a face's three
// corners.
func (s *Scene) FacePositions(f Face) (a, b, c math3d.Vec3) {
	return s.Vertices[f.V[0]].Position, s.Vertices[f.V[1]].Position, s.Vertices[f.V[2]].Position
}

// FaceTexCoords returns the UV coordinates of a face's three corners.
func (s *Scene) FaceTexCoords(f Face) (a, b, c math3d.Vec2) {
	return s.TexCoords[f.VT[0]], s.TexCoords[f.VT[1]], s.TexCoords[f.VT[2]]
}

// FaceNormal returns the face's single shared normal.
func (s *Scene) FaceNormal(f Face) math3d.Vec3 {
	return s.Normals[f.VN]
}

// ErrorKind distinguishes the broad classes of failure this package
// can report, so callers can branch without string-matching.
type ErrorKind int

const (
	// KindInputFormat covers a non-.obj file extension and malformed
	// OBJ syntax: wrong component counts, non-numeric values, missing
	// texture/normal indices.
	KindInputFormat ErrorKind = iota
	// KindIO covers file-system failures opening or reading the file.
	KindIO
)

// Error is a mesh-loading error tagged with its Kind.
type Error struct {
	Kind ErrorKind
	Line int // 1-based source line, 0 if not line-specific
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func inputFormatErr(line int, format string, args ...any) error {
	return &Error{Kind: KindInputFormat, Line: line, Err: fmt.Errorf(format, args...)}
}

func ioErr(err error) error {
	return &Error{Kind: KindIO, Err: err}
}
