package preview

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/gobrush"
)

func TestCameraEye(t *testing.T) {
	c := NewCamera(mgl64.Vec3{10, 0, 0}, 4)
	if d := c.Eye().Sub(c.Target).Len(); math.Abs(d-c.Distance) > 1e-9 {
		t.Errorf("eye is %v from target, want %v", d, c.Distance)
	}

	c.AddAngle(0, 10)
	if c.Pitch > maxPitch {
		t.Errorf("pitch %v not clamped", c.Pitch)
	}

	d := c.Distance
	c.Zoom(0.5)
	if math.Abs(c.Distance-d/2) > 1e-9 {
		t.Errorf("zoom distance %v", c.Distance)
	}
	c.Zoom(-1)
	if math.Abs(c.Distance-d/2) > 1e-9 {
		t.Errorf("negative zoom changed distance")
	}
}

func TestProjectTargetToCenter(t *testing.T) {
	c := NewCamera(mgl64.Vec3{5, 5, 5}, 10)
	m := c.Matrix(800, 600)
	x, y, ok := project(m, c.Target, 800, 600)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(float64(x)-400) > 1e-3 || math.Abs(float64(y)-300) > 1e-3 {
		t.Errorf("target projected to %v,%v", x, y)
	}

	behind := c.Eye().Add(c.Eye().Sub(c.Target))
	if _, _, ok := project(m, behind, 800, 600); ok {
		t.Errorf("point behind the camera reported visible")
	}
}

func sceneOf(zs ...float64) *Scene {
	s := &gobrush.Surface{Texture: "wall"}
	n := mgl64.Vec3{0, 0, 1}
	for i, z := range zs {
		base := uint32(i * 3)
		s.Vertices = append(s.Vertices, mgl64.Vec3{0, 0, z}, mgl64.Vec3{1, 0, z}, mgl64.Vec3{0, 1, z})
		s.Normals = append(s.Normals, n, n, n)
		s.UVs = append(s.UVs, mgl64.Vec2{}, mgl64.Vec2{}, mgl64.Vec2{})
		s.Indices = append(s.Indices, base, base+1, base+2)
	}
	return NewScene([]*gobrush.Surface{s})
}

func TestSceneSortByDistance(t *testing.T) {
	sc := sceneOf(10, 0, 5)
	if sc.Len() != 3 {
		t.Fatalf("Len = %d", sc.Len())
	}
	sc.sortByDistance(mgl64.Vec3{0, 0, 100})
	want := []int{1, 2, 0}
	for i, w := range want {
		if sc.order[i] != w {
			t.Fatalf("order = %v, want %v", sc.order, want)
		}
	}

	center, radius := sc.Bounds()
	if !center.ApproxEqualThreshold(mgl64.Vec3{0.5, 0.5, 5}, 1e-9) || radius <= 5 {
		t.Errorf("bounds %v r=%v", center, radius)
	}
}

func TestTriangleFacing(t *testing.T) {
	sc := sceneOf(0)
	tri := &sc.tris[0]
	if !tri.facing(mgl64.Vec3{0, 0, 10}) {
		t.Errorf("front not facing the eye above")
	}
	if tri.facing(mgl64.Vec3{0, 0, -10}) {
		t.Errorf("back facing the eye below")
	}
}

func TestShade(t *testing.T) {
	col := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	n := mgl64.Vec3{0, 0, 1}

	if got := shade(col, n, mgl64.Vec3{0, 0, 5}); got != col {
		t.Errorf("facing the viewer = %v, want %v", got, col)
	}
	away := shade(col, n, mgl64.Vec3{0, 0, -5})
	if away.R >= col.R || away.B != 7 || away.A != 255 {
		t.Errorf("facing away = %v", away)
	}
}

func TestTextureColorStable(t *testing.T) {
	if textureColor("brick") != textureColor("brick") {
		t.Errorf("texture color not deterministic")
	}
	if c := textureColor("brick"); c.R < 96 || c.G < 96 || c.B < 96 || c.A != 255 {
		t.Errorf("color %v too dark", c)
	}
}

func TestCameraClip(t *testing.T) {
	c := &Camera{Target: mgl64.Vec3{0, 0, 0}, Distance: 10}
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normalize()
	side := mgl64.Vec3{0, 1, 0}

	testCases := []struct {
		name  string
		loop  []mgl64.Vec3
		verts int
	}{
		{
			name:  "fully in front",
			loop:  []mgl64.Vec3{{0, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			verts: 3,
		},
		{
			name: "fully behind",
			loop: []mgl64.Vec3{
				eye.Sub(forward), eye.Sub(forward).Add(side), eye.Sub(forward.Mul(2)),
			},
			verts: 0,
		},
		{
			name: "one corner behind",
			loop: []mgl64.Vec3{
				{0, 0, 0}, {0, 1, 0}, eye.Sub(forward),
			},
			verts: 4,
		},
	}

	plane := c.nearPlane()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.clip(tc.loop)
			if len(got) != tc.verts {
				t.Fatalf("got %d vertices, want %d", len(got), tc.verts)
			}
			m := c.Matrix(640, 480)
			for _, v := range got {
				if plane.DistanceTo(v) < -1e-9 {
					t.Errorf("vertex %v behind the near plane", v)
				}
				if _, _, ok := project(m, v, 640, 480); !ok {
					t.Errorf("clipped vertex %v does not project", v)
				}
			}
		})
	}
}
