package gobrush

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Default tuning values for vertex computation.
const (
	DefaultSplitEpsilon   = 1e-5
	DefaultMatchTolerance = 0.1
	DefaultWeldThreshold  = 4.0
)

// Face is one authored side of a brush: its bounding plane plus the
// parameters used to project texture coordinates onto it. Vertices stay empty
// until Solid.ComputeVertices fills them.
type Face struct {
	Plane   Plane
	Texture string

	UAxis, VAxis   mgl64.Vec3
	XShift, YShift float64
	Rotation       float64
	XScale, YScale float64
	// Valve marks Valve 220 faces whose UAxis/VAxis are authored explicitly.
	Valve bool

	Vertices []mgl64.Vec3
	// Discard is set by hidden-face culling. Discarded faces are skipped for
	// rendering but still take part in collision.
	Discard bool
}

// HasGeometry reports whether the face ended up with a usable loop.
func (f *Face) HasGeometry() bool {
	return len(f.Vertices) >= 3
}

// Centroid returns the average of the computed vertices.
func (f *Face) Centroid() mgl64.Vec3 {
	return centroid(f.Vertices)
}

// Solid is a convex brush: the intersection of the half-spaces behind its
// faces' planes. NonSolid and Trigger are set by the host from entity
// configuration and only affect collider building.
type Solid struct {
	Faces    []*Face
	NonSolid bool
	Trigger  bool

	origin   mgl64.Vec3
	computed bool
}

// VertexOptions tunes Solid.ComputeVertices. Zero values fall back to the
// package defaults, except WeldThreshold where zero disables welding.
type VertexOptions struct {
	SplitEpsilon   float64
	MatchTolerance float64
	WeldThreshold  float64
}

func (o VertexOptions) withDefaults() VertexOptions {
	if o.SplitEpsilon <= 0 {
		o.SplitEpsilon = DefaultSplitEpsilon
	}
	if o.MatchTolerance <= 0 {
		o.MatchTolerance = DefaultMatchTolerance
	}
	return o
}

// NewSolid returns a solid owning faces.
func NewSolid(faces ...*Face) *Solid {
	return &Solid{Faces: faces}
}

// Planes returns the authored planes in face order.
func (s *Solid) Planes() []Plane {
	planes := make([]Plane, len(s.Faces))
	for i, f := range s.Faces {
		planes[i] = f.Plane
	}
	return planes
}

// Origin is the polyhedron origin computed by ComputeVertices, or the average
// of the face centroids if vertices were assigned some other way.
func (s *Solid) Origin() mgl64.Vec3 {
	if s.computed {
		return s.origin
	}
	var sum mgl64.Vec3
	var n int
	for _, f := range s.Faces {
		if f.HasGeometry() {
			sum = sum.Add(f.Centroid())
			n++
		}
	}
	if n == 0 {
		return mgl64.Vec3{}
	}
	return sum.Mul(1 / float64(n))
}

// Bounds returns the axis-aligned box around every computed vertex. ok is
// false when the solid has no geometry.
func (s *Solid) Bounds() (min, max mgl64.Vec3, ok bool) {
	for _, f := range s.Faces {
		for _, v := range f.Vertices {
			if !ok {
				min, max, ok = v, v, true
				continue
			}
			for i := 0; i < 3; i++ {
				if v[i] < min[i] {
					min[i] = v[i]
				}
				if v[i] > max[i] {
					max[i] = v[i]
				}
			}
		}
	}
	return min, max, ok
}

// ComputeVertices rebuilds every face's vertex loop from the solid's planes,
// matches generated polygons back to authored faces and welds seams. Solids
// with fewer than four faces cannot bound a volume and are left without
// geometry. Planes that leave the volume open empty the whole solid. Faces
// that cannot be matched keep an empty loop and are reported in the returned
// warnings; the Solid field of each warning is left for the
// caller to fill.
func (s *Solid) ComputeVertices(opts VertexOptions) []Warning {
	opts = opts.withDefaults()
	for _, f := range s.Faces {
		f.Vertices = nil
	}
	s.computed = false
	if len(s.Faces) < 4 {
		return nil
	}

	ph := NewPolyhedron(s.Planes(), opts.SplitEpsilon)
	s.origin = ph.Origin
	s.computed = true

	var warnings []Warning
	for i, poly := range ph.Faces {
		if !poly.IsValid() {
			warnings = append(warnings, Warning{
				Face:    i,
				Kind:    WarnEmptyPolygon,
				Message: "plane does not bound the brush volume",
			})
		}
	}

	if open := ph.UnboundedFaces(); len(open) > 0 {
		for _, fi := range open {
			warnings = append(warnings, Warning{
				Face:    fi,
				Kind:    WarnUnbounded,
				Message: "planes do not enclose a finite volume",
			})
		}
		s.computed = false
		return warnings
	}

	_, unmatched := matchFaces(s.Faces, ph.Faces, opts.MatchTolerance)
	warnings = append(warnings, unmatched...)

	if opts.WeldThreshold > 0 {
		s.Weld(opts.WeldThreshold)
		for fi, f := range s.Faces {
			if len(f.Vertices) > 0 && !f.HasGeometry() {
				f.Vertices = nil
				warnings = append(warnings, Warning{
					Face:    fi,
					Kind:    WarnCollapsedFace,
					Message: fmt.Sprintf("welding at %.3g left fewer than 3 vertices", opts.WeldThreshold),
				})
			}
		}
	}
	return warnings
}

// matchFaces copies into each face the loop of the unclaimed polygon closest
// to its normal. Faces whose own polygon is empty were already reported and
// stay silent; any other face left without a match gets a WarnUnmatchedFace.
func matchFaces(faces []*Face, polys []*Polygon, tol float64) (claimed []bool, warnings []Warning) {
	claimed = make([]bool, len(polys))
	normals := make([]mgl64.Vec3, len(polys))
	for i, poly := range polys {
		normals[i] = poly.Normal()
	}

	for fi, f := range faces {
		best := claimPolygon(f.Plane.Normal, polys, normals, claimed, tol)
		if best < 0 {
			if fi >= len(polys) || polys[fi].IsValid() {
				warnings = append(warnings, Warning{
					Face:    fi,
					Kind:    WarnUnmatchedFace,
					Message: fmt.Sprintf("no polygon within %.3g of normal %v", tol, f.Plane.Normal),
				})
			}
			continue
		}
		f.Vertices = make([]mgl64.Vec3, len(polys[best].Vertices))
		copy(f.Vertices, polys[best].Vertices)
	}
	return claimed, warnings
}

// claimPolygon matches n, then n reversed, against the unclaimed polygons
// and marks the winner claimed. It returns -1 when neither direction is
// within tol.
func claimPolygon(n mgl64.Vec3, polys []*Polygon, normals []mgl64.Vec3, claimed []bool, tol float64) int {
	best := matchPolygon(n, polys, normals, claimed, tol)
	if best < 0 {
		best = matchPolygon(n.Mul(-1), polys, normals, claimed, tol)
	}
	if best >= 0 {
		claimed[best] = true
	}
	return best
}

// matchPolygon returns the unclaimed, non-empty polygon whose normal has the
// smallest per-axis delta from n, or -1 if none is below tol.
func matchPolygon(n mgl64.Vec3, polys []*Polygon, normals []mgl64.Vec3, claimed []bool, tol float64) int {
	best, bestDelta := -1, tol
	for i, poly := range polys {
		if claimed[i] || !poly.IsValid() {
			continue
		}
		d := normalDelta(n, normals[i])
		if d < bestDelta {
			best, bestDelta = i, d
		}
	}
	return best
}
