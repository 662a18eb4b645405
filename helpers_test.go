package gobrush

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, float64EqualityThreshold)
}

// boxFaces returns the six outward faces of the axis-aligned box lo..hi.
func boxFaces(lo, hi mgl64.Vec3, texture string) []*Face {
	return []*Face{
		{Plane: NewPlane(mgl64.Vec3{1, 0, 0}, hi[0]), Texture: texture},
		{Plane: NewPlane(mgl64.Vec3{-1, 0, 0}, -lo[0]), Texture: texture},
		{Plane: NewPlane(mgl64.Vec3{0, 1, 0}, hi[1]), Texture: texture},
		{Plane: NewPlane(mgl64.Vec3{0, -1, 0}, -lo[1]), Texture: texture},
		{Plane: NewPlane(mgl64.Vec3{0, 0, 1}, hi[2]), Texture: texture},
		{Plane: NewPlane(mgl64.Vec3{0, 0, -1}, -lo[2]), Texture: texture},
	}
}

func boxSolid(lo, hi mgl64.Vec3, texture string) *Solid {
	return NewSolid(boxFaces(lo, hi, texture)...)
}

func cube(half float64) *Solid {
	return boxSolid(mgl64.Vec3{-half, -half, -half}, mgl64.Vec3{half, half, half}, "wall")
}

// wedge is a 64 unit cube with the +x/+z edge cut off at 45 degrees.
func wedge() *Solid {
	s := cube(32)
	s.Faces = append(s.Faces, &Face{
		Plane:   NewPlane(mgl64.Vec3{1, 0, 1}, 32),
		Texture: "slope",
	})
	return s
}

func computed(t *testing.T, s *Solid, opts VertexOptions) *Solid {
	t.Helper()
	if ws := s.ComputeVertices(opts); len(ws) != 0 {
		t.Fatalf("unexpected warnings: %v", ws)
	}
	return s
}

func distinctVertices(s *Solid) map[mgl64.Vec3]bool {
	seen := make(map[mgl64.Vec3]bool)
	for _, f := range s.Faces {
		for _, v := range f.Vertices {
			seen[v] = true
		}
	}
	return seen
}

// assertConvex checks that no computed vertex lies in front of any plane.
func assertConvex(t *testing.T, s *Solid) {
	t.Helper()
	for fi, f := range s.Faces {
		for _, v := range f.Vertices {
			for pi, p := range s.Planes() {
				if d := p.DistanceTo(v); d > 1e-6 {
					t.Errorf("face %d vertex %v is %g in front of plane %d", fi, v, d, pi)
				}
			}
		}
	}
}
