package gobrush

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultAxisTolerance is how far a normal component may stray from 0 or ±1
// for a face to still count as axis-aligned.
const DefaultAxisTolerance = 1e-4

// ColliderMode selects how solids become collision shapes.
type ColliderMode int

const (
	ColliderNone ColliderMode = iota
	ColliderBoxOnly
	ColliderConvexOnly
	ColliderBoxAndConvex
	ColliderMergedConcave
)

var colliderModeNames = []string{"none", "boxonly", "convexonly", "boxandconvex", "mergedconcave"}

func (m ColliderMode) String() string {
	if m < 0 || int(m) >= len(colliderModeNames) {
		return fmt.Sprintf("ColliderMode(%d)", int(m))
	}
	return colliderModeNames[m]
}

// ParseColliderMode accepts the names printed by String, case-insensitively.
func ParseColliderMode(s string) (ColliderMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colliderModeNames {
		if n == name {
			return ColliderMode(i), nil
		}
	}
	return ColliderNone, fmt.Errorf("unknown collider mode %q: %w", s, ErrInvalidConfig)
}

// ColliderKind is the classification of one collider.
type ColliderKind int

const (
	ColliderBox ColliderKind = iota
	ColliderConvex
	ColliderConcave
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderBox:
		return "box"
	case ColliderConvex:
		return "convex"
	case ColliderConcave:
		return "concave"
	}
	return "unknown"
}

// Collider is a collision shape for one solid, or for a merge group when
// Solid is -1. Min and Max are always set; Vertices and Indices only for
// mesh kinds.
type Collider struct {
	Kind     ColliderKind
	Solid    int
	Min, Max mgl64.Vec3
	Vertices []mgl64.Vec3
	Indices  []uint32
}

// Center returns the middle of the bounding box.
func (c *Collider) Center() mgl64.Vec3 {
	return c.Min.Add(c.Max).Mul(0.5)
}

// Size returns the bounding box extents.
func (c *Collider) Size() mgl64.Vec3 {
	return c.Max.Sub(c.Min)
}

// ColliderOptions controls collider building.
type ColliderOptions struct {
	Mode   ColliderMode
	Scale  float64
	Origin mgl64.Vec3
	// AxisTolerance defaults to DefaultAxisTolerance.
	AxisTolerance float64
}

func (o ColliderOptions) withDefaults() ColliderOptions {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.AxisTolerance <= 0 {
		o.AxisTolerance = DefaultAxisTolerance
	}
	return o
}

func (o ColliderOptions) transform(v mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(o.Origin).Mul(o.Scale)
}

// ClassifySolid returns ColliderBox when every face with geometry has an
// axis-aligned normal, and ColliderConvex otherwise.
func ClassifySolid(s *Solid, tol float64) ColliderKind {
	for _, f := range s.Faces {
		if !f.HasGeometry() {
			continue
		}
		if !f.Plane.IsAxisAligned(tol) {
			return ColliderConvex
		}
	}
	return ColliderBox
}

// BuildColliders classifies every solid that is not marked NonSolid.
// Discarded faces still count: culling only affects rendering. Trigger solids
// are always convex. In ColliderMergedConcave mode the remaining solids are
// emitted as a single concave mesh.
func BuildColliders(solids []*Solid, opts ColliderOptions) []Collider {
	opts = opts.withDefaults()
	if opts.Mode == ColliderNone {
		return nil
	}

	slots := make([]Collider, len(solids))
	filled := make([]bool, len(solids))
	var merged []int

	for i, s := range solids {
		if opts.Mode == ColliderMergedConcave && !s.NonSolid && !s.Trigger {
			merged = append(merged, i)
		}
	}

	parallelFor(len(solids), 8, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s := solids[i]
			if s.NonSolid {
				continue
			}
			if opts.Mode == ColliderMergedConcave && !s.Trigger {
				continue
			}
			if c, ok := solidCollider(s, opts); ok {
				c.Solid = i
				slots[i], filled[i] = c, true
			}
		}
	})

	var out []Collider
	for i := range slots {
		if filled[i] {
			out = append(out, slots[i])
		}
	}
	if len(merged) > 0 {
		group := make([]*Solid, len(merged))
		for k, i := range merged {
			group[k] = solids[i]
		}
		if c, ok := meshCollider(group, ColliderConcave, opts); ok {
			c.Solid = -1
			out = append(out, c)
		}
	}
	return out
}

func solidCollider(s *Solid, opts ColliderOptions) (Collider, bool) {
	kind := ColliderConvex
	switch {
	case s.Trigger:
	case opts.Mode == ColliderBoxOnly:
		kind = ColliderBox
	case opts.Mode == ColliderBoxAndConvex:
		kind = ClassifySolid(s, opts.AxisTolerance)
	}

	if kind == ColliderBox {
		lo, hi, ok := s.Bounds()
		if !ok {
			return Collider{}, false
		}
		return Collider{Kind: ColliderBox, Min: opts.transform(lo), Max: opts.transform(hi)}, true
	}
	return meshCollider([]*Solid{s}, kind, opts)
}

func meshCollider(solids []*Solid, kind ColliderKind, opts ColliderOptions) (Collider, bool) {
	c := Collider{Kind: kind}
	first := true
	for _, s := range solids {
		for _, f := range s.Faces {
			if !f.HasGeometry() {
				continue
			}
			base := uint32(len(c.Vertices))
			for _, v := range f.Vertices {
				w := opts.transform(v)
				c.Vertices = append(c.Vertices, w)
				if first {
					c.Min, c.Max, first = w, w, false
					continue
				}
				for a := 0; a < 3; a++ {
					c.Min[a] = min(c.Min[a], w[a])
					c.Max[a] = max(c.Max[a], w[a])
				}
			}
			c.Indices = append(c.Indices, fanIndices(len(f.Vertices), base)...)
		}
	}
	return c, !first
}
