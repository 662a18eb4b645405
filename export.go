package gobrush

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// plyVertex is the dedup key for exported vertices. Two corners merge only
// when both position and texture coordinate agree.
type plyVertex struct {
	pos mgl64.Vec3
	uv  mgl64.Vec2
}

// WritePLY writes surfaces as one ASCII PLY mesh with per-vertex texture
// coordinates. Identical vertices shared by several triangles are written once.
func WritePLY(w io.Writer, surfaces []*Surface) error {
	index := make(map[plyVertex]int)
	var verts []plyVertex
	var tris [][3]int

	for _, s := range surfaces {
		remap := make([]int, len(s.Vertices))
		for i, p := range s.Vertices {
			key := plyVertex{pos: p, uv: s.UVs[i]}
			at, ok := index[key]
			if !ok {
				at = len(verts)
				index[key] = at
				verts = append(verts, key)
			}
			remap[i] = at
		}
		for i := 0; i+2 < len(s.Indices); i += 3 {
			tris = append(tris, [3]int{remap[s.Indices[i]], remap[s.Indices[i+1]], remap[s.Indices[i+2]]})
		}
	}

	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, "ply")
	_, _ = fmt.Fprintln(bw, "format ascii 1.0")
	_, _ = fmt.Fprintf(bw, "comment gobrush %d surfaces\n", len(surfaces))
	_, _ = fmt.Fprintf(bw, "element vertex %d\n", len(verts))
	_, _ = fmt.Fprintln(bw, "property float x")
	_, _ = fmt.Fprintln(bw, "property float y")
	_, _ = fmt.Fprintln(bw, "property float z")
	_, _ = fmt.Fprintln(bw, "property float s")
	_, _ = fmt.Fprintln(bw, "property float t")
	_, _ = fmt.Fprintf(bw, "element face %d\n", len(tris))
	_, _ = fmt.Fprintln(bw, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(bw, "end_header")

	for _, v := range verts {
		_, _ = fmt.Fprintf(bw, "%f %f %f %f %f\n", v.pos[0], v.pos[1], v.pos[2], v.uv[0], v.uv[1])
	}
	for _, t := range tris {
		_, _ = fmt.Fprintf(bw, "3 %d %d %d\n", t[0], t[1], t[2])
	}
	return bw.Flush()
}

// WriteDXF writes every triangle of surfaces as a 3DFACE entity on a layer
// named after its texture.
func WriteDXF(w io.Writer, surfaces []*Surface) error {
	bw := bufio.NewWriter(w)
	pair := func(code int, value any) {
		_, _ = fmt.Fprintf(bw, "%d\n%v\n", code, value)
	}
	point := func(base int, p mgl64.Vec3) {
		pair(base, p[0])
		pair(base+10, p[1])
		pair(base+20, p[2])
	}

	pair(0, "SECTION")
	pair(2, "HEADER")
	pair(0, "ENDSEC")
	pair(0, "SECTION")
	pair(2, "ENTITIES")

	for _, s := range surfaces {
		layer := s.Texture
		if layer == "" {
			layer = "0"
		}
		for i := 0; i+2 < len(s.Indices); i += 3 {
			a, b, c := s.Vertices[s.Indices[i]], s.Vertices[s.Indices[i+1]], s.Vertices[s.Indices[i+2]]
			pair(0, "3DFACE")
			pair(8, layer)
			point(10, a)
			point(11, b)
			point(12, c)
			// A triangle repeats its last corner.
			point(13, c)
		}
	}

	pair(0, "ENDSEC")
	pair(0, "EOF")
	return bw.Flush()
}
