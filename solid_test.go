package gobrush

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestComputeVerticesCube(t *testing.T) {
	s := computed(t, cube(1), VertexOptions{WeldThreshold: 4})

	for i, f := range s.Faces {
		if len(f.Vertices) != 4 {
			t.Errorf("face %d has %d vertices, want 4", i, len(f.Vertices))
		}
		n := (&Polygon{Vertices: f.Vertices}).Normal()
		if !vecAlmostEqual(n, f.Plane.Normal) {
			t.Errorf("face %d winding normal %v, plane normal %v", i, n, f.Plane.Normal)
		}
	}
	if got := len(distinctVertices(s)); got != 8 {
		t.Errorf("got %d distinct vertices after welding, want 8", got)
	}
	if !vecAlmostEqual(s.Origin(), mgl64.Vec3{}) {
		t.Errorf("Origin = %v, want 0", s.Origin())
	}

	lo, hi, ok := s.Bounds()
	if !ok {
		t.Fatal("Bounds reported no geometry")
	}
	if !vecAlmostEqual(lo, mgl64.Vec3{-1, -1, -1}) || !vecAlmostEqual(hi, mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Bounds = %v..%v", lo, hi)
	}
}

func TestComputeVerticesConvex(t *testing.T) {
	s := computed(t, wedge(), VertexOptions{WeldThreshold: DefaultWeldThreshold})
	assertConvex(t, s)
	if got := len(distinctVertices(s)); got != 10 {
		t.Errorf("got %d distinct vertices, want 10", got)
	}
}

func TestComputeVerticesTooFewFaces(t *testing.T) {
	s := cube(1)
	s.Faces = s.Faces[:3]
	if ws := s.ComputeVertices(VertexOptions{}); ws != nil {
		t.Errorf("warnings = %v, want none", ws)
	}
	for i, f := range s.Faces {
		if f.HasGeometry() {
			t.Errorf("face %d has geometry", i)
		}
	}
	if _, _, ok := s.Bounds(); ok {
		t.Errorf("Bounds reported geometry")
	}
}

func TestComputeVerticesWarnings(t *testing.T) {
	s := cube(1)
	s.Faces = append(s.Faces, &Face{Plane: NewPlane(mgl64.Vec3{1, 0, 0}, 5)})

	ws := s.ComputeVertices(VertexOptions{})
	if len(ws) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(ws), ws)
	}
	if ws[0].Kind != WarnEmptyPolygon || ws[0].Face != 6 {
		t.Errorf("warning = %v", ws[0])
	}
	if s.Faces[6].HasGeometry() {
		t.Errorf("outside face has geometry")
	}
	for i := 0; i < 6; i++ {
		if len(s.Faces[i].Vertices) != 4 {
			t.Errorf("face %d has %d vertices, want 4", i, len(s.Faces[i].Vertices))
		}
	}
}

func TestComputeVerticesResets(t *testing.T) {
	s := computed(t, cube(1), VertexOptions{})
	s.Faces[0].Plane = NewPlane(mgl64.Vec3{1, 0, 0}, 3)
	computed(t, s, VertexOptions{})

	_, hi, _ := s.Bounds()
	if !almostEqual(hi[0], 3) {
		t.Errorf("max x = %v after moving the +x plane, want 3", hi[0])
	}
}

func TestMatchPolygon(t *testing.T) {
	polys := []*Polygon{square()}
	normals := []mgl64.Vec3{{0, 0, 1}}

	if got := matchPolygon(mgl64.Vec3{0, 0, -1}, polys, normals, []bool{false}, DefaultMatchTolerance); got != -1 {
		t.Errorf("opposite normal matched polygon %d", got)
	}
	if got := matchPolygon(mgl64.Vec3{0, 0.02, 0.99}, polys, normals, []bool{false}, DefaultMatchTolerance); got != 0 {
		t.Errorf("close normal matched %d, want 0", got)
	}
	if got := matchPolygon(mgl64.Vec3{0, 0, 1}, polys, normals, []bool{true}, DefaultMatchTolerance); got != -1 {
		t.Errorf("claimed polygon matched again")
	}
}

func TestClaimPolygon(t *testing.T) {
	polys := []*Polygon{square()}
	normals := []mgl64.Vec3{{0, 0, 1}}

	testCases := []struct {
		name string
		n    mgl64.Vec3
		want int
	}{
		{"same direction", mgl64.Vec3{0, 0, 1}, 0},
		{"reversed", mgl64.Vec3{0, 0, -1}, 0},
		{"perpendicular", mgl64.Vec3{1, 0, 0}, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claimed := []bool{false}
			got := claimPolygon(tc.n, polys, normals, claimed, DefaultMatchTolerance)
			if got != tc.want {
				t.Fatalf("claimPolygon = %d, want %d", got, tc.want)
			}
			if claimed[0] != (tc.want == 0) {
				t.Errorf("claimed = %v", claimed)
			}
			if got >= 0 {
				if again := claimPolygon(tc.n, polys, normals, claimed, DefaultMatchTolerance); again != -1 {
					t.Errorf("polygon claimed twice")
				}
			}
		})
	}
}

func TestMatchFacesReversedNormal(t *testing.T) {
	poly := square()
	poly.Reverse()
	faces := []*Face{
		{Plane: NewPlane(mgl64.Vec3{0, 0, 1}, 0)},
		{Plane: NewPlane(mgl64.Vec3{0, 0, 1}, 0)},
	}

	claimed, ws := matchFaces(faces, []*Polygon{poly}, DefaultMatchTolerance)

	if len(claimed) != 1 || !claimed[0] {
		t.Errorf("claimed = %v, want [true]", claimed)
	}
	if len(faces[0].Vertices) != len(poly.Vertices) {
		t.Fatalf("face 0 has %d vertices, want %d", len(faces[0].Vertices), len(poly.Vertices))
	}
	for i, v := range poly.Vertices {
		if faces[0].Vertices[i] != v {
			t.Errorf("face 0 vertex %d = %v, want %v", i, faces[0].Vertices[i], v)
		}
	}
	if faces[1].HasGeometry() {
		t.Errorf("second face took the already claimed polygon")
	}
	if len(ws) != 1 || ws[0].Face != 1 || ws[0].Kind != WarnUnmatchedFace {
		t.Errorf("warnings = %v, want one unmatched warning on face 1", ws)
	}
}

func TestComputeVerticesUnbounded(t *testing.T) {
	s := cube(1)
	// Flipping the +x side leaves the box open toward +x.
	s.Faces[0].Plane = NewPlane(mgl64.Vec3{-1, 0, 0}, -1)

	ws := s.ComputeVertices(VertexOptions{WeldThreshold: DefaultWeldThreshold})

	kinds := make(map[int]WarningKind)
	for _, w := range ws {
		kinds[w.Face] = w.Kind
	}
	want := map[int]WarningKind{
		1: WarnEmptyPolygon,
		2: WarnUnbounded,
		3: WarnUnbounded,
		4: WarnUnbounded,
		5: WarnUnbounded,
	}
	if len(ws) != len(want) {
		t.Errorf("got %d warnings, want %d: %v", len(ws), len(want), ws)
	}
	for fi, k := range want {
		if got, ok := kinds[fi]; !ok || got != k {
			t.Errorf("face %d warning = %v (present %v), want %v", fi, got, ok, k)
		}
	}
	for i, f := range s.Faces {
		if len(f.Vertices) != 0 {
			t.Errorf("face %d kept %d vertices", i, len(f.Vertices))
		}
	}
	if _, _, ok := s.Bounds(); ok {
		t.Errorf("Bounds reported geometry")
	}
}
