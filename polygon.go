package gobrush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is an ordered, coplanar, convex vertex loop. Its plane is always
// derived from the winding of the first three vertices and never stored.
type Polygon struct {
	Vertices []mgl64.Vec3
}

// SplitResult holds the outcome of Polygon.Split. Front and Back are nil when
// the polygon has no part on that side. For coplanar results both are nil.
type SplitResult struct {
	Side  Side
	Front *Polygon
	Back  *Polygon
}

// NewPolygon returns a polygon over vertices without copying them.
func NewPolygon(vertices ...mgl64.Vec3) *Polygon {
	return &Polygon{Vertices: vertices}
}

// IsValid reports whether the polygon has enough vertices to bound an area.
func (p *Polygon) IsValid() bool {
	return p != nil && len(p.Vertices) >= 3
}

// Normal returns (v1-v0)×(v2-v0), normalized. Degenerate polygons return the
// zero vector.
func (p *Polygon) Normal() mgl64.Vec3 {
	if len(p.Vertices) < 3 {
		return mgl64.Vec3{}
	}
	n := p.Vertices[1].Sub(p.Vertices[0]).Cross(p.Vertices[2].Sub(p.Vertices[0]))
	l := n.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return n.Mul(1 / l)
}

// Plane derives the polygon's plane from its winding.
func (p *Polygon) Plane() Plane {
	n := p.Normal()
	if len(p.Vertices) == 0 {
		return Plane{Normal: n}
	}
	return Plane{Normal: n, Distance: n.Dot(p.Vertices[0])}
}

// Centroid is the average of the vertices.
func (p *Polygon) Centroid() mgl64.Vec3 {
	return centroid(p.Vertices)
}

// Area sums the cross products around the loop. Valid for any planar simple
// polygon.
func (p *Polygon) Area() float64 {
	if len(p.Vertices) < 3 {
		return 0
	}
	var sum mgl64.Vec3
	v0 := p.Vertices[0]
	for i := 1; i < len(p.Vertices)-1; i++ {
		sum = sum.Add(p.Vertices[i].Sub(v0).Cross(p.Vertices[i+1].Sub(v0)))
	}
	return sum.Len() / 2
}

// Reverse flips the winding in place, and with it the derived normal.
func (p *Polygon) Reverse() {
	v := p.Vertices
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// Clone returns a copy with its own vertex slice.
func (p *Polygon) Clone() *Polygon {
	v := make([]mgl64.Vec3, len(p.Vertices))
	copy(v, p.Vertices)
	return &Polygon{Vertices: v}
}

// Triangulate returns fan indices (0, k-1, k) for k in 2..n-1. Only valid for
// convex loops, which every polygon built by clipping is.
func (p *Polygon) Triangulate() []uint32 {
	return fanIndices(len(p.Vertices), 0)
}

// Split clips the polygon against clip. Vertex distances within eps of the
// plane are snapped to zero. The receiver is never modified: fully one-sided
// polygons are returned as is, spanning polygons produce two new fragments.
func (p *Polygon) Split(clip Plane, eps float64) SplitResult {
	n := len(p.Vertices)
	dist := make([]float64, n)
	var front, back int
	for i, v := range p.Vertices {
		d := snapDistance(clip.DistanceTo(v), eps)
		dist[i] = d
		if d > 0 {
			front++
		} else if d < 0 {
			back++
		}
	}

	switch {
	case front == 0 && back == 0:
		if p.Normal().Dot(clip.Normal) > 0 {
			return SplitResult{Side: SideCoplanarFront}
		}
		return SplitResult{Side: SideCoplanarBack}
	case back == 0:
		return SplitResult{Side: SideFront, Front: p}
	case front == 0:
		return SplitResult{Side: SideBack, Back: p}
	}

	fv := make([]mgl64.Vec3, 0, n+2)
	bv := make([]mgl64.Vec3, 0, n+2)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		v0, v1 := p.Vertices[i], p.Vertices[j]
		d0, d1 := dist[i], dist[j]

		if d0 <= 0 {
			bv = append(bv, v0)
		}
		if d0 >= 0 {
			fv = append(fv, v0)
		}
		if (d0 < 0 && d1 > 0) || (d0 > 0 && d1 < 0) {
			x := clip.Intersect(v0, v1, d0, d1)
			fv = append(fv, x)
			bv = append(bv, x)
		}
	}

	return SplitResult{
		Side:  SideSpanning,
		Front: &Polygon{Vertices: fv},
		Back:  &Polygon{Vertices: bv},
	}
}

// pointInPolygon2D runs an even-odd ray cast of pt against loop after
// dropping the coordinate axis drop.
func pointInPolygon2D(pt mgl64.Vec3, loop []mgl64.Vec3, drop int) bool {
	u, v := projectionAxes(drop)
	px, py := pt[u], pt[v]

	inside := false
	n := len(loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		ax, ay := loop[i][u], loop[i][v]
		bx, by := loop[j][u], loop[j][v]
		if (ay > py) != (by > py) {
			x := (bx-ax)*(py-ay)/(by-ay) + ax
			if px < x {
				inside = !inside
			}
		}
	}
	return inside
}

// projectionAxes returns the two axes left after dropping one.
func projectionAxes(drop int) (int, int) {
	switch drop {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	}
	return 0, 1
}

func centroid(vs []mgl64.Vec3) mgl64.Vec3 {
	if len(vs) == 0 {
		return mgl64.Vec3{}
	}
	var sum mgl64.Vec3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(vs)))
}

// fanIndices triangulates a convex loop of n vertices starting at base.
func fanIndices(n int, base uint32) []uint32 {
	if n < 3 {
		return nil
	}
	idx := make([]uint32, 0, (n-2)*3)
	for k := 2; k < n; k++ {
		idx = append(idx, base, base+uint32(k-1), base+uint32(k))
	}
	return idx
}

func normalDelta(a, b mgl64.Vec3) float64 {
	return math.Abs(a[0]-b[0]) + math.Abs(a[1]-b[1]) + math.Abs(a[2]-b[2])
}
