package gobrush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TextureSizer supplies texture dimensions by name. Hosts back it with their
// texture metadata; a false ok falls back to the default texture size.
type TextureSizer interface {
	TextureSize(name string) (width, height int, ok bool)
}

// TextureSizes is a TextureSizer backed by a map.
type TextureSizes map[string][2]int

func (t TextureSizes) TextureSize(name string) (int, int, bool) {
	s, ok := t[name]
	return s[0], s[1], ok
}

// quakeBaseAxes holds, per axial plane, the normal used to pick it followed
// by the U and V axes textures are projected along.
var quakeBaseAxes = [6][3]mgl64.Vec3{
	{{0, 0, 1}, {1, 0, 0}, {0, -1, 0}},  // floor
	{{0, 0, -1}, {1, 0, 0}, {0, -1, 0}}, // ceiling
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},  // west wall
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, // east wall
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},  // south wall
	{{0, -1, 0}, {1, 0, 0}, {0, 0, -1}}, // north wall
}

// TextureAxes returns the world-space U and V axes the face projects along,
// before scaling. Valve faces use their authored axes; standard faces pick
// the closest axial plane and rotate its axes by Rotation degrees.
func (f *Face) TextureAxes() (u, v mgl64.Vec3) {
	if f.Valve {
		return f.UAxis, f.VAxis
	}

	best, bestDot := 0, 0.0
	for i, axes := range quakeBaseAxes {
		d := f.Plane.Normal.Dot(axes[0])
		if d > bestDot {
			best, bestDot = i, d
		}
	}
	u, v = quakeBaseAxes[best][1], quakeBaseAxes[best][2]
	if f.Rotation == 0 {
		return u, v
	}

	sv, tv := firstNonZero(u), firstNonZero(v)
	rad := f.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	rotate := func(a mgl64.Vec3) mgl64.Vec3 {
		s := cos*a[sv] - sin*a[tv]
		t := sin*a[sv] + cos*a[tv]
		a[sv], a[tv] = s, t
		return a
	}
	return rotate(u), rotate(v)
}

// UV projects v into texture space and normalizes by the texture size.
func (f *Face) UV(v mgl64.Vec3, width, height float64) mgl64.Vec2 {
	u, t := f.TextureAxes()
	xs, ys := nonZero(f.XScale), nonZero(f.YScale)
	s := v.Dot(u.Mul(1/xs)) + f.XShift
	r := v.Dot(t.Mul(1/ys)) + f.YShift
	if width > 0 {
		s /= width
	}
	if height > 0 {
		r /= height
	}
	return mgl64.Vec2{s, r}
}

func firstNonZero(a mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] != 0 {
			return i
		}
	}
	return 0
}

func nonZero(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}
