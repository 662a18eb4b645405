package gobrush

import "math"

const (
	DefaultCullDistanceTolerance = 0.01
	DefaultCullNudgeFraction     = 0.01

	// opposedDot is how close to exactly opposite two normals must be.
	opposedDot = 0.999
)

// CullOptions tunes hidden-face culling. Zero values use the defaults.
type CullOptions struct {
	// DistanceTolerance bounds |d_i + d_n| for two planes to count as
	// coincident.
	DistanceTolerance float64
	// NudgeFraction moves each tested vertex this fraction of the way toward
	// its face centroid before the containment test.
	NudgeFraction float64
}

func (o CullOptions) withDefaults() CullOptions {
	if o.DistanceTolerance <= 0 {
		o.DistanceTolerance = DefaultCullDistanceTolerance
	}
	if o.NudgeFraction <= 0 {
		o.NudgeFraction = DefaultCullNudgeFraction
	}
	return o
}

// FaceHiddenBy reports whether f is sandwiched against by: the two planes
// are coincident and opposite, and every vertex of f, nudged toward its
// centroid, lies inside by's footprint. The test is one-directional.
func FaceHiddenBy(f, by *Face, opts CullOptions) bool {
	opts = opts.withDefaults()
	return faceHiddenBy(f, by, opts)
}

func faceHiddenBy(f, by *Face, opts CullOptions) bool {
	if f == by || !f.HasGeometry() || !by.HasGeometry() {
		return false
	}
	if math.Abs(f.Plane.Distance+by.Plane.Distance) >= opts.DistanceTolerance {
		return false
	}
	if f.Plane.Normal.Dot(by.Plane.Normal) >= -opposedDot {
		return false
	}

	c := f.Centroid()
	drop := by.Plane.DominantAxis()
	for _, v := range f.Vertices {
		p := v.Add(c.Sub(v).Mul(opts.NudgeFraction))
		if !pointInPolygon2D(p, by.Vertices, drop) {
			return false
		}
	}
	return true
}

// CullHiddenFaces sets Discard on every face with geometry that is hidden by
// some other face across all solids, and clears it on the rest. It returns
// the number of faces discarded. Faces are tested in parallel; each test
// only reads the shared face data and writes its own result slot.
func CullHiddenFaces(solids []*Solid, opts CullOptions) int {
	opts = opts.withDefaults()

	var faces []*Face
	for _, s := range solids {
		for _, f := range s.Faces {
			if f.HasGeometry() {
				faces = append(faces, f)
			}
		}
	}

	// Bucket planes by distance so each face only meets candidates whose
	// distance can cancel its own.
	tol := opts.DistanceTolerance
	buckets := make(map[int64][]int, len(faces))
	for i, f := range faces {
		k := distanceKey(f.Plane.Distance, tol)
		buckets[k] = append(buckets[k], i)
	}

	hidden := make([]bool, len(faces))
	parallelFor(len(faces), 16, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f := faces[i]
			k := distanceKey(-f.Plane.Distance, tol)
		search:
			for dk := int64(-1); dk <= 1; dk++ {
				for _, n := range buckets[k+dk] {
					if n != i && faceHiddenBy(f, faces[n], opts) {
						hidden[i] = true
						break search
					}
				}
			}
		}
	})

	count := 0
	for i, f := range faces {
		f.Discard = hidden[i]
		if hidden[i] {
			count++
		}
	}
	return count
}

func distanceKey(d, tol float64) int64 {
	return int64(math.Floor(d / tol))
}
