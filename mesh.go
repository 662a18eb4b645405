package gobrush

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const DefaultTextureSize = 64

// Surface is one render batch: every retained face sharing a texture,
// flattened into vertex, normal, UV and triangle index buffers.
type Surface struct {
	Texture  string
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	UVs      []mgl64.Vec2
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (s *Surface) VertexCount() int {
	return len(s.Vertices)
}

// TriangleCount returns the number of triangles.
func (s *Surface) TriangleCount() int {
	return len(s.Indices) / 3
}

// MeshOptions controls how faces become surfaces.
type MeshOptions struct {
	// Scale converts map units to world units. Zero means 1.
	Scale float64
	// Origin is subtracted from every vertex before scaling.
	Origin mgl64.Vec3
	// TexelScale multiplies every UV. Zero means 1.
	TexelScale float64
	// DefaultTextureSize is used when Textures has no entry. Zero means
	// DefaultTextureSize.
	DefaultTextureSize int
	Textures           TextureSizer
	// SkipTextures lists texture names that are never rendered.
	SkipTextures []string
	// ReverseWinding emits clockwise triangles for hosts that want them.
	ReverseWinding bool
}

func (o MeshOptions) withDefaults() MeshOptions {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.TexelScale == 0 {
		o.TexelScale = 1
	}
	if o.DefaultTextureSize <= 0 {
		o.DefaultTextureSize = DefaultTextureSize
	}
	return o
}

func (o MeshOptions) textureSize(name string) (float64, float64) {
	if o.Textures != nil {
		if w, h, ok := o.Textures.TextureSize(name); ok && w > 0 && h > 0 {
			return float64(w), float64(h)
		}
	}
	return float64(o.DefaultTextureSize), float64(o.DefaultTextureSize)
}

// meshJob is one face's write window inside its surface.
type meshJob struct {
	face    *Face
	surface *Surface
	vertex  int
	index   int
}

// BuildSurfaces turns every face that has geometry, is not discarded and is
// not using a skipped texture into triangles, grouped by texture name in
// sorted order. Buffer offsets are laid out first, then faces are filled in
// parallel into their own windows.
func BuildSurfaces(solids []*Solid, opts MeshOptions) []*Surface {
	opts = opts.withDefaults()
	skip := make(map[string]bool, len(opts.SkipTextures))
	for _, t := range opts.SkipTextures {
		skip[t] = true
	}

	groups := make(map[string][]*Face)
	for _, s := range solids {
		for _, f := range s.Faces {
			if !f.HasGeometry() || f.Discard || skip[f.Texture] {
				continue
			}
			groups[f.Texture] = append(groups[f.Texture], f)
		}
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	surfaces := make([]*Surface, 0, len(names))
	var jobs []meshJob
	for _, name := range names {
		surf := &Surface{Texture: name}
		var nv, ni int
		for _, f := range groups[name] {
			jobs = append(jobs, meshJob{face: f, surface: surf, vertex: nv, index: ni})
			nv += len(f.Vertices)
			ni += (len(f.Vertices) - 2) * 3
		}
		surf.Vertices = make([]mgl64.Vec3, nv)
		surf.Normals = make([]mgl64.Vec3, nv)
		surf.UVs = make([]mgl64.Vec2, nv)
		surf.Indices = make([]uint32, ni)
		surfaces = append(surfaces, surf)
	}

	parallelFor(len(jobs), 32, func(lo, hi int) {
		for _, j := range jobs[lo:hi] {
			fillFace(j, opts)
		}
	})
	return surfaces
}

func fillFace(j meshJob, opts MeshOptions) {
	f, s := j.face, j.surface
	w, h := opts.textureSize(f.Texture)
	n := (&Polygon{Vertices: f.Vertices}).Normal()
	if n == (mgl64.Vec3{}) {
		n = f.Plane.Normal
	}

	for k, v := range f.Vertices {
		at := j.vertex + k
		s.Vertices[at] = v.Sub(opts.Origin).Mul(opts.Scale)
		s.Normals[at] = n
		s.UVs[at] = f.UV(v, w, h).Mul(opts.TexelScale)
	}

	base := uint32(j.vertex)
	at := j.index
	for k := 2; k < len(f.Vertices); k++ {
		b, c := base+uint32(k-1), base+uint32(k)
		if opts.ReverseWinding {
			b, c = c, b
		}
		s.Indices[at], s.Indices[at+1], s.Indices[at+2] = base, b, c
		at += 3
	}
}
