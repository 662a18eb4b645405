package preview

import (
	"hash/fnv"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/gobrush"
)

type triangle struct {
	corners [3]mgl64.Vec3
	mid     mgl64.Vec3
	normal  mgl64.Vec3
	col     color.RGBA
}

// Scene is the flattened triangle list of a set of surfaces.
type Scene struct {
	tris   []triangle
	order  []int
	center mgl64.Vec3
	radius float64
}

// NewScene collects every triangle of surfaces, colored per texture.
func NewScene(surfaces []*gobrush.Surface) *Scene {
	sc := &Scene{}
	var lo, hi mgl64.Vec3
	first := true
	for _, s := range surfaces {
		col := textureColor(s.Texture)
		for i := 0; i+2 < len(s.Indices); i += 3 {
			t := triangle{col: col}
			for k := 0; k < 3; k++ {
				t.corners[k] = s.Vertices[s.Indices[i+k]]
			}
			t.mid = t.corners[0].Add(t.corners[1]).Add(t.corners[2]).Mul(1.0 / 3)
			t.normal = s.Normals[s.Indices[i]]
			sc.tris = append(sc.tris, t)

			for _, v := range t.corners {
				if first {
					lo, hi, first = v, v, false
					continue
				}
				for a := 0; a < 3; a++ {
					lo[a] = math.Min(lo[a], v[a])
					hi[a] = math.Max(hi[a], v[a])
				}
			}
		}
	}
	sc.center = lo.Add(hi).Mul(0.5)
	sc.radius = hi.Sub(lo).Len() / 2
	sc.order = make([]int, len(sc.tris))
	for i := range sc.order {
		sc.order[i] = i
	}
	return sc
}

// Len returns the number of triangles.
func (sc *Scene) Len() int {
	return len(sc.tris)
}

// Bounds returns the center and radius of the sphere around the scene.
func (sc *Scene) Bounds() (mgl64.Vec3, float64) {
	return sc.center, sc.radius
}

// sortByDistance orders triangles farthest first from eye so they can be
// painted back to front.
func (sc *Scene) sortByDistance(eye mgl64.Vec3) {
	sort.SliceStable(sc.order, func(i, j int) bool {
		di := sc.tris[sc.order[i]].mid.Sub(eye).LenSqr()
		dj := sc.tris[sc.order[j]].mid.Sub(eye).LenSqr()
		return di > dj
	})
}

// facing reports whether t's front side is toward eye.
func (t *triangle) facing(eye mgl64.Vec3) bool {
	return t.normal.Dot(eye.Sub(t.mid)) > 0
}

func textureColor(name string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()
	return color.RGBA{
		R: uint8(96 + sum%160),
		G: uint8(96 + (sum>>8)%160),
		B: uint8(96 + (sum>>16)%160),
		A: 255,
	}
}

// shade darkens col by how far the face turns away from the viewer.
func shade(col color.RGBA, normal, toEye mgl64.Vec3) color.RGBA {
	const (
		ambientLight = 0.65
		diffuseLight = 1.0 - ambientLight
	)
	diffuse := 0.0
	if l := toEye.Len(); l > 0 {
		diffuse = math.Max(0, normal.Dot(toEye.Mul(1/l)))
	}
	c := 240 - int(math.Round((ambientLight+diffuse*diffuseLight)*240))

	const floor = 7
	return color.RGBA{
		R: uint8(clamp(int(col.R)-c, floor, 255)),
		G: uint8(clamp(int(col.G)-c, floor, 255)),
		B: uint8(clamp(int(col.B)-c, floor, 255)),
		A: col.A,
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
