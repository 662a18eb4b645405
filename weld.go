package gobrush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxWeldPasses  = 64
	weldTieEpsilon = 1e-9

	// coincidentEpsilon separates copies of the same corner, which differ
	// only by clipping noise, from distinct corners at equal distance.
	coincidentEpsilon = 1e-4
)

// Weld closes hairline seams between the solid's own faces. Every vertex
// pair taken from two different faces that lies closer than threshold is
// snapped to whichever of the two is farther from the solid origin; pairs at
// the same distance are left alone unless they are copies of one corner, in
// which case the lexicographically greater position wins. Passes repeat
// until nothing moves, so calling Weld again on a welded solid changes
// nothing. It returns the number of vertices moved.
func (s *Solid) Weld(threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	origin := s.Origin()
	moved := 0

	for pass := 0; pass < maxWeldPasses; pass++ {
		changed := 0
		for i := 0; i < len(s.Faces); i++ {
			fi := s.Faces[i]
			for j := i + 1; j < len(s.Faces); j++ {
				changed += weldPair(fi.Vertices, s.Faces[j].Vertices, origin, threshold)
			}
		}
		moved += changed
		if changed == 0 {
			break
		}
	}

	for _, f := range s.Faces {
		f.Vertices = compactLoop(f.Vertices)
	}
	return moved
}

func weldPair(a, b []mgl64.Vec3, origin mgl64.Vec3, threshold float64) int {
	n := 0
	for ia := range a {
		for ib := range b {
			va, vb := a[ia], b[ib]
			if va == vb {
				continue
			}
			gap := va.Sub(vb).Len()
			if gap >= threshold {
				continue
			}
			da := va.Sub(origin).Len()
			db := vb.Sub(origin).Len()
			keepA := da > db
			if math.Abs(da-db) <= weldTieEpsilon {
				if gap > coincidentEpsilon {
					continue
				}
				keepA = lexGreater(va, vb)
			}
			if keepA {
				b[ib] = va
			} else {
				a[ia] = vb
			}
			n++
		}
	}
	return n
}

// compactLoop drops consecutive duplicates, including the wrap from the last
// vertex to the first.
func compactLoop(loop []mgl64.Vec3) []mgl64.Vec3 {
	if len(loop) < 2 {
		return loop
	}
	out := loop[:1]
	for _, v := range loop[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func lexGreater(a, b mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
