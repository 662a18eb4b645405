package gobrush

import "fmt"

// WarningKind classifies a geometry problem that was degraded to "no
// geometry" instead of failing the build.
type WarningKind int

const (
	// WarnEmptyPolygon: the face's plane was clipped away entirely by the
	// other planes of its solid.
	WarnEmptyPolygon WarningKind = iota
	// WarnUnmatchedFace: no polyhedron face lay within the normal tolerance,
	// even with the normal reversed.
	WarnUnmatchedFace
	// WarnCollapsedFace: welding folded the face below three vertices.
	WarnCollapsedFace
	// WarnUnbounded: the solid's planes leave its volume open, so the face
	// reached the edge of its seed quad. The whole solid is left empty.
	WarnUnbounded
)

func (k WarningKind) String() string {
	switch k {
	case WarnEmptyPolygon:
		return "empty polygon"
	case WarnUnmatchedFace:
		return "unmatched face"
	case WarnCollapsedFace:
		return "collapsed face"
	case WarnUnbounded:
		return "unbounded"
	}
	return "unknown"
}

// Warning is a per-face diagnostic returned alongside the geometry.
type Warning struct {
	Solid   int
	Face    int
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("solid %d face %d: %s: %s", w.Solid, w.Face, w.Kind, w.Message)
}
