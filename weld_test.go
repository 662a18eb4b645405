package gobrush

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWeldPair(t *testing.T) {
	testCases := []struct {
		name      string
		a, b      mgl64.Vec3
		threshold float64
		moved     int
		want      mgl64.Vec3
	}{
		{
			name:      "snaps to the farther vertex",
			a:         mgl64.Vec3{1, 0, 0},
			b:         mgl64.Vec3{1.5, 0, 0},
			threshold: 1,
			moved:     1,
			want:      mgl64.Vec3{1.5, 0, 0},
		},
		{
			name:      "outside threshold",
			a:         mgl64.Vec3{1, 0, 0},
			b:         mgl64.Vec3{3, 0, 0},
			threshold: 1,
		},
		{
			name:      "distinct corners at equal distance",
			a:         mgl64.Vec3{1, 0, 0},
			b:         mgl64.Vec3{0, 1, 0},
			threshold: 4,
		},
		{
			name:      "copies of one corner",
			a:         mgl64.Vec3{1, 0, 0},
			b:         mgl64.Vec3{1, 1e-6, 0},
			threshold: 4,
			moved:     1,
			want:      mgl64.Vec3{1, 1e-6, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := []mgl64.Vec3{tc.a}, []mgl64.Vec3{tc.b}
			moved := weldPair(a, b, mgl64.Vec3{}, tc.threshold)
			if moved != tc.moved {
				t.Fatalf("moved %d, want %d", moved, tc.moved)
			}
			if moved == 0 {
				if a[0] != tc.a || b[0] != tc.b {
					t.Errorf("vertices changed to %v, %v", a[0], b[0])
				}
				return
			}
			if a[0] != tc.want || b[0] != tc.want {
				t.Errorf("welded to %v, %v, want %v", a[0], b[0], tc.want)
			}
		})
	}
}

func TestWeldIdempotent(t *testing.T) {
	for _, s := range []*Solid{cube(1), cube(64), wedge()} {
		computed(t, s, VertexOptions{WeldThreshold: DefaultWeldThreshold})

		before := make([][]mgl64.Vec3, len(s.Faces))
		for i, f := range s.Faces {
			before[i] = append([]mgl64.Vec3(nil), f.Vertices...)
		}
		if moved := s.Weld(DefaultWeldThreshold); moved != 0 {
			t.Errorf("second weld moved %d vertices", moved)
		}
		for i, f := range s.Faces {
			if len(f.Vertices) != len(before[i]) {
				t.Fatalf("face %d changed size", i)
			}
			for k := range f.Vertices {
				if f.Vertices[k] != before[i][k] {
					t.Errorf("face %d vertex %d moved from %v to %v", i, k, before[i][k], f.Vertices[k])
				}
			}
		}
	}
}

func TestWeldClosesSeams(t *testing.T) {
	s := computed(t, cube(8), VertexOptions{})
	// Nudge one copy of the +x/+y/+z corner as if clipping had drifted.
	for k, v := range s.Faces[0].Vertices {
		if vecAlmostEqual(v, mgl64.Vec3{8, 8, 8}) {
			s.Faces[0].Vertices[k] = v.Add(mgl64.Vec3{0.01, 0.02, 0})
		}
	}
	if moved := s.Weld(1); moved == 0 {
		t.Fatal("nothing moved")
	}
	if got := len(distinctVertices(s)); got != 8 {
		t.Errorf("got %d distinct vertices, want 8", got)
	}
}

func TestWeldDisabled(t *testing.T) {
	s := cube(1)
	if moved := s.Weld(0); moved != 0 {
		t.Errorf("Weld(0) moved %d", moved)
	}
}

func TestCompactLoop(t *testing.T) {
	a, b, c := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	testCases := []struct {
		name string
		in   []mgl64.Vec3
		want int
	}{
		{"clean", []mgl64.Vec3{a, b, c}, 3},
		{"consecutive duplicate", []mgl64.Vec3{a, b, b, c}, 3},
		{"wrap duplicate", []mgl64.Vec3{a, b, c, a}, 3},
		{"collapsed", []mgl64.Vec3{a, a, a}, 1},
	}
	for _, tc := range testCases {
		if got := len(compactLoop(tc.in)); got != tc.want {
			t.Errorf("%s: got %d vertices, want %d", tc.name, got, tc.want)
		}
	}
}
