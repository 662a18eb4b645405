package gobrush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Side is the result of classifying a point or polygon against a plane.
type Side int

const (
	SideOn Side = iota
	SideFront
	SideBack
	SideSpanning
	SideCoplanarFront
	SideCoplanarBack
)

func (s Side) String() string {
	switch s {
	case SideOn:
		return "on"
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	case SideSpanning:
		return "spanning"
	case SideCoplanarFront:
		return "coplanar-front"
	case SideCoplanarBack:
		return "coplanar-back"
	}
	return "unknown"
}

// Plane is a half-space boundary: every point p with Normal·p - Distance > 0
// lies in front of it.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlane normalizes normal and rescales distance to match. A zero normal
// yields the zero plane.
func NewPlane(normal mgl64.Vec3, distance float64) Plane {
	l := normal.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: normal.Mul(1 / l), Distance: distance / l}
}

// NewPlaneFromPoints builds a plane through three authored points using the
// Quake winding convention, so the normal points out of the brush when the
// points are listed clockwise as seen from outside. ok is false when the
// points are collinear.
func NewPlaneFromPoints(a, b, c mgl64.Vec3) (p Plane, ok bool) {
	n := a.Sub(b).Cross(c.Sub(b))
	l := n.Len()
	if l < 1e-12 {
		return Plane{}, false
	}
	n = n.Mul(1 / l)
	return Plane{Normal: n, Distance: n.Dot(a)}, true
}

// DistanceTo returns the signed distance from the plane to p.
func (p Plane) DistanceTo(v mgl64.Vec3) float64 {
	return p.Normal.Dot(v) - p.Distance
}

// Flip returns the plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Distance: -p.Distance}
}

// Classify reports which side of the plane v is on. Distances within eps of
// zero count as on the plane.
func (p Plane) Classify(v mgl64.Vec3, eps float64) Side {
	d := p.DistanceTo(v)
	switch {
	case d > eps:
		return SideFront
	case d < -eps:
		return SideBack
	}
	return SideOn
}

// DominantAxis returns the index (0=X, 1=Y, 2=Z) of the normal component with
// the largest magnitude. Ties go to the lower index.
func (p Plane) DominantAxis() int {
	return dominantAxis(p.Normal)
}

// IsAxisAligned reports whether every normal component is within tol of 0 or
// of ±1.
func (p Plane) IsAxisAligned(tol float64) bool {
	for i := 0; i < 3; i++ {
		a := math.Abs(p.Normal[i])
		if a > tol && math.Abs(a-1) > tol {
			return false
		}
	}
	return true
}

// Intersect returns the point where segment a-b crosses the plane, given the
// already computed signed distances of both ends.
func (p Plane) Intersect(a, b mgl64.Vec3, da, db float64) mgl64.Vec3 {
	t := da / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}

func dominantAxis(n mgl64.Vec3) int {
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// snapDistance treats anything thinner than eps as lying on the plane.
func snapDistance(d, eps float64) float64 {
	if math.Abs(d) <= eps {
		return 0
	}
	return d
}
