// Package camera loads and validates the pinhole camera that a source
// photograph was taken with, and derives the basis vectors the
// rendering pipeline transforms against.
package camera

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"texatlas/pkg/math3d"
)

// ErrorKind distinguishes camera validation failures.
type ErrorKind int

const (
	// KindMissingField covers a required JSON field that is absent, and
	// JSON that does not parse.
	KindMissingField ErrorKind = iota
	// KindDegenerateBasis covers a look/up pair that can't form a basis.
	KindDegenerateBasis
	// KindIO covers file-system failures.
	KindIO
)

// Error is a camera-loading error tagged with its Kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Camera is a pinhole camera: a position, a viewing direction, an up
// direction (used only to build the basis, not guaranteed orthogonal
// to Look), and a horizontal field of view in degrees.
type Camera struct {
	Position      math3d.Vec3
	Look          math3d.Vec3
	Up            math3d.Vec3
	FovHorizontal float64 // degrees
}

// jsonCamera mirrors the on-disk representation: arrays of three
// numbers rather than the math3d.Vec3 struct encoding.
type jsonCamera struct {
	Position      *[3]float64 `json:"position"`
	LookDirection *[3]float64 `json:"look_direction"`
	UpDirection   *[3]float64 `json:"up_direction"`
	FovHorizontal *float64    `json:"fov_horizontal"`
}

// Load reads and validates a camera description from a JSON file.
func Load(path string) (*Camera, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Err: fmt.Errorf("read camera file: %w", err)}
	}

	var jc jsonCamera
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, &Error{Kind: KindMissingField, Err: fmt.Errorf("parse camera json: %w", err)}
	}

	switch {
	case jc.Position == nil:
		return nil, &Error{Kind: KindMissingField, Err: fmt.Errorf("camera json missing required field %q", "position")}
	case jc.LookDirection == nil:
		return nil, &Error{Kind: KindMissingField, Err: fmt.Errorf("camera json missing required field %q", "look_direction")}
	case jc.UpDirection == nil:
		return nil, &Error{Kind: KindMissingField, Err: fmt.Errorf("camera json missing required field %q", "up_direction")}
	case jc.FovHorizontal == nil:
		return nil, &Error{Kind: KindMissingField, Err: fmt.Errorf("camera json missing required field %q", "fov_horizontal")}
	}

	c := &Camera{
		Position:      math3d.V3(jc.Position[0], jc.Position[1], jc.Position[2]),
		Look:          math3d.V3(jc.LookDirection[0], jc.LookDirection[1], jc.LookDirection[2]),
		Up:            math3d.V3(jc.UpDirection[0], jc.UpDirection[1], jc.UpDirection[2]),
		FovHorizontal: *jc.FovHorizontal,
	}

	if _, _, _, err := c.Basis(); err != nil {
		return nil, err
	}
	return c, nil
}

// Basis constructs the camera's right-handed (u, v, w) frame. The
// camera looks down -w. up is taken as given, not reprojected
// orthogonal to look before the cross product, matching the source
// this pipeline was derived from.
func (c *Camera) Basis() (u, v, w math3d.Vec3, err error) {
	w = c.Look.Normalize().Negate()
	cross := c.Up.Cross(w)
	if cross.LenSq() == 0 {
		return math3d.Vec3{}, math3d.Vec3{}, math3d.Vec3{},
			&Error{Kind: KindDegenerateBasis, Err: fmt.Errorf("look_direction and up_direction must not be parallel")}
	}
	u = cross.Normalize()
	v = w.Cross(u)
	return u, v, w, nil
}

// VerticalFOV derives the vertical field of view (radians) from the
// horizontal FOV (degrees) and an image aspect ratio (width/height).
func (c *Camera) VerticalFOV(aspectRatio float64) float64 {
	fovH := c.FovHorizontal * math.Pi / 180
	return 2 * math.Atan((1/aspectRatio)*math.Tan(fovH/2))
}

// FovHorizontalRadians returns the configured horizontal FOV in radians.
func (c *Camera) FovHorizontalRadians() float64 {
	return c.FovHorizontal * math.Pi / 180
}
