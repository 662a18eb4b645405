package gobrush

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes one Build run.
type Stats struct {
	Solids    int
	Faces     int
	Geometry  int // faces that ended up with a vertex loop
	Culled    int
	Triangles int
	Colliders int
	Elapsed   time.Duration
}

// Result is everything Build produces.
type Result struct {
	Surfaces  []*Surface
	Colliders []Collider
	Warnings  []Warning
	Stats     Stats
}

// Build runs the whole pipeline over solids: vertex computation per solid,
// optional hidden-face culling across all solids, then surfaces and colliders.
// Solids are modified in place. Only an invalid cfg produces an error;
// geometry problems are reported as warnings.
func Build(solids []*Solid, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	log := Logger()
	start := time.Now()

	perSolid := make([][]Warning, len(solids))
	vopts := cfg.vertexOptions()
	parallelFor(len(solids), 4, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ws := solids[i].ComputeVertices(vopts)
			for k := range ws {
				ws[k].Solid = i
			}
			perSolid[i] = ws
		}
	})

	res := &Result{}
	for _, ws := range perSolid {
		res.Warnings = append(res.Warnings, ws...)
	}
	for _, w := range res.Warnings {
		log.Warn("brush geometry", "solid", w.Solid, "face", w.Face, "kind", w.Kind.String(), "msg", w.Message)
	}
	log.Debug("vertices computed", "solids", len(solids), "warnings", len(res.Warnings), "elapsed", time.Since(start))

	if cfg.CullHiddenFaces {
		t := time.Now()
		res.Stats.Culled = CullHiddenFaces(solids, CullOptions{DistanceTolerance: cfg.CullDistanceTolerance})
		log.Debug("faces culled", "count", res.Stats.Culled, "elapsed", time.Since(t))
	} else {
		for _, s := range solids {
			for _, f := range s.Faces {
				f.Discard = false
			}
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		res.Surfaces = BuildSurfaces(solids, cfg.meshOptions())
		return nil
	})
	g.Go(func() error {
		res.Colliders = BuildColliders(solids, cfg.colliderOptions())
		return nil
	})
	_ = g.Wait()

	res.Stats.Solids = len(solids)
	for _, s := range solids {
		res.Stats.Faces += len(s.Faces)
		for _, f := range s.Faces {
			if f.HasGeometry() {
				res.Stats.Geometry++
			}
		}
	}
	for _, surf := range res.Surfaces {
		res.Stats.Triangles += surf.TriangleCount()
	}
	res.Stats.Colliders = len(res.Colliders)
	res.Stats.Elapsed = time.Since(start)

	log.Debug("build finished",
		"surfaces", len(res.Surfaces),
		"triangles", res.Stats.Triangles,
		"colliders", res.Stats.Colliders,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}
