package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"texatlas/pkg/math3d"
)

// LoadOBJ parses a Wavefront OBJ file into a Scene. It understands only
// v/vt/vn/f lines; every other prefix is ignored. Faces with more than
// three vertices are fan-triangulated around their first vertex. Every
// face-vertex must carry a vertex, texture-coordinate and normal index
// (v/vt/vn); anything else is a fatal input-format error.
func LoadOBJ(path string) (*Scene, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".obj") {
		return nil, inputFormatErr(0, "mesh file must have a .obj extension, got %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr(fmt.Errorf("open obj: %w", err))
	}
	defer f.Close()

	var (
		vertices  []Vertex
		texCoords []math3d.Vec2
		normals   []math3d.Vec3
		faces     []Face
	)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields, lineNo)
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, Vertex{Position: v})
		case "vt":
			vt, err := parseTexCoord(fields, lineNo)
			if err != nil {
				return nil, err
			}
			texCoords = append(texCoords, vt)
		case "vn":
			vn, err := parseNormal(fields, lineNo)
			if err != nil {
				return nil, err
			}
			normals = append(normals, vn)
		case "f":
			fs, err := parseFace(fields, lineNo)
			if err != nil {
				return nil, err
			}
			faces = append(faces, fs...)
		default:
			// unrecognized prefix (g, o, s, usemtl, ...): ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ioErr(fmt.Errorf("read obj: %w", err))
	}

	return NewScene(vertices, texCoords, normals, faces), nil
}

func parseVertex(fields []string, line int) (math3d.Vec3, error) {
	if len(fields) != 4 {
		return math3d.Vec3{}, inputFormatErr(line, "vertex should have three dimensions")
	}
	x, err1 := strconv.ParseFloat(fields[1], 64)
	y, err2 := strconv.ParseFloat(fields[2], 64)
	z, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return math3d.Vec3{}, inputFormatErr(line, "vertex coordinates must be numeric")
	}
	return math3d.V3(x, y, z), nil
}

func parseTexCoord(fields []string, line int) (math3d.Vec2, error) {
	if len(fields) != 3 {
		return math3d.Vec2{}, inputFormatErr(line, "texture coordinate should have two dimensions")
	}
	u, err1 := strconv.ParseFloat(fields[1], 64)
	v, err2 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil {
		return math3d.Vec2{}, inputFormatErr(line, "texture coordinate must be numeric")
	}
	return math3d.V2(u, v), nil
}

func parseNormal(fields []string, line int) (math3d.Vec3, error) {
	if len(fields) != 4 {
		return math3d.Vec3{}, inputFormatErr(line, "normal should have three dimensions")
	}
	x, err1 := strconv.ParseFloat(fields[1], 64)
	y, err2 := strconv.ParseFloat(fields[2], 64)
	z, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return math3d.Vec3{}, inputFormatErr(line, "normal coordinates must be numeric")
	}
	return math3d.V3(x, y, z), nil
}

// faceCorner is a single v/vt/vn triple, 0-based after parsing.
type faceCorner struct {
	v, vt, vn int
}

func parseFaceCorner(token string, line int) (faceCorner, error) {
	parts := strings.Split(token, "/")
	if len(parts) != 3 || parts[1] == "" {
		return faceCorner{}, inputFormatErr(line, "vertices of faces should have texture coords and normals")
	}
	v, err1 := strconv.Atoi(parts[0])
	vt, err2 := strconv.Atoi(parts[1])
	vn, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return faceCorner{}, inputFormatErr(line, "vertices of faces should have texture coords and normals")
	}
	return faceCorner{v: v - 1, vt: vt - 1, vn: vn - 1}, nil
}

// parseFace fan-triangulates an n-gon face line around its first
// vertex: for corners c0, c1, ..., c(n-1) it emits triangles
// (c0, c(i-1), ci) for i = 2..n-1. A face's shared normal index is
// taken from its first corner, matching the one-normal-per-face model.
func parseFace(fields []string, line int) ([]Face, error) {
	if len(fields) < 4 {
		return nil, inputFormatErr(line, "face needs at least three vertices")
	}

	corners := make([]faceCorner, len(fields)-1)
	for i, tok := range fields[1:] {
		c, err := parseFaceCorner(tok, line)
		if err != nil {
			return nil, err
		}
		corners[i] = c
	}

	first := corners[0]
	faces := make([]Face, 0, len(corners)-2)
	for i := 2; i < len(corners); i++ {
		prev := corners[i-1]
		cur := corners[i]
		faces = append(faces, Face{
			V:  [3]int{first.v, prev.v, cur.v},
			VT: [3]int{first.vt, prev.vt, cur.vt},
			VN: first.vn,
		})
	}
	return faces, nil
}
