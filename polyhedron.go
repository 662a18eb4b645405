package gobrush

import "github.com/go-gl/mathgl/mgl64"

// SeedRadius is the half-size of the quad each plane starts from before it
// is clipped down by the other planes. Brush coordinates must stay below
// half of it.
const SeedRadius = 1e5

// unboundedLimit is the distance from the world origin past which a vertex
// can only come from a seed quad edge that no plane clipped.
const unboundedLimit = SeedRadius / 2

// Polyhedron is the convex solid bounded by a set of planes, held as one
// polygon per plane in input order. An empty polygon means its plane does not
// touch the bounded volume.
type Polyhedron struct {
	Faces  []*Polygon
	Origin mgl64.Vec3
}

// NewPolyhedron intersects the half-spaces behind every plane. eps is the
// split tolerance handed to Polygon.Split.
func NewPolyhedron(planes []Plane, eps float64) *Polyhedron {
	ph := &Polyhedron{Faces: make([]*Polygon, len(planes))}

	for i, p := range planes {
		poly := seedQuad(p)
		for j, clip := range planes {
			if j == i {
				continue
			}
			r := poly.Split(clip, eps)
			switch r.Side {
			case SideCoplanarFront:
				// duplicate plane, bounds nothing new
				continue
			case SideCoplanarBack:
				poly = &Polygon{}
			default:
				poly = r.Back
			}
			if !poly.IsValid() {
				poly = &Polygon{}
				break
			}
		}
		ph.Faces[i] = poly
	}

	var sum mgl64.Vec3
	var n int
	for _, f := range ph.Faces {
		if f.IsValid() {
			sum = sum.Add(f.Centroid())
			n++
		}
	}
	if n > 0 {
		ph.Origin = sum.Mul(1 / float64(n))
	}

	for _, f := range ph.Faces {
		if f.IsValid() && f.Plane().DistanceTo(ph.Origin) >= 0 {
			f.Reverse()
		}
	}
	return ph
}

// seedQuad returns a large square on p whose winding yields p's normal.
func seedQuad(p Plane) *Polygon {
	up := mgl64.Vec3{0, 0, 1}
	if p.DominantAxis() == 2 {
		up = mgl64.Vec3{1, 0, 0}
	}
	up = up.Sub(p.Normal.Mul(up.Dot(p.Normal))).Normalize()
	right := up.Cross(p.Normal)

	org := p.Normal.Mul(p.Distance)
	up = up.Mul(SeedRadius)
	right = right.Mul(SeedRadius)

	return NewPolygon(
		org.Sub(right).Sub(up),
		org.Add(right).Sub(up),
		org.Add(right).Add(up),
		org.Sub(right).Add(up),
	)
}

// UnboundedFaces returns the indices of faces that still reach the border of
// their seed quad. A non-empty result means the planes do not enclose a
// finite volume.
func (ph *Polyhedron) UnboundedFaces() []int {
	var open []int
	for i, f := range ph.Faces {
		for _, v := range f.Vertices {
			if v.Len() > unboundedLimit {
				open = append(open, i)
				break
			}
		}
	}
	return open
}
