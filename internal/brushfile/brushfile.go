// Package brushfile reads brush levels stored as JSON.
//
// A level looks like:
//
//	{
//	  "textures": {"brick": [128, 64]},
//	  "solids": [{
//	    "trigger": false,
//	    "nonsolid": false,
//	    "faces": [{
//	      "points": [[0,0,0], [0,1,0], [1,0,0]],
//	      "texture": "brick",
//	      "shift": [0, 0], "rotation": 0, "scale": [1, 1]
//	    }]
//	  }]
//	}
//
// The three points of each face are ordered the way Quake map files order
// them, so the plane normal points out of the solid. Valve 220 faces set
// "valve" and carry explicit "u" and "v" axes.
package brushfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/gobrush"
)

// ErrDegenerateFace is returned for faces whose three points do not span a
// plane.
var ErrDegenerateFace = errors.New("face points are collinear")

type fileFace struct {
	Points   [3][3]float64 `json:"points"`
	Texture  string        `json:"texture"`
	U        [3]float64    `json:"u"`
	V        [3]float64    `json:"v"`
	Shift    [2]float64    `json:"shift"`
	Rotation float64       `json:"rotation"`
	Scale    [2]float64    `json:"scale"`
	Valve    bool          `json:"valve"`
}

type fileSolid struct {
	Faces    []fileFace `json:"faces"`
	Trigger  bool       `json:"trigger"`
	NonSolid bool       `json:"nonsolid"`
}

type fileLevel struct {
	Textures map[string][2]int `json:"textures"`
	Solids   []fileSolid       `json:"solids"`
}

// Level is a decoded file.
type Level struct {
	Solids   []*gobrush.Solid
	Textures gobrush.TextureSizes
}

// LoadFile reads a level from path.
func LoadFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open level %s: %w", path, err)
	}
	defer f.Close()

	lvl, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Load decodes a level from r.
func Load(r io.Reader) (*Level, error) {
	var in fileLevel
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}

	lvl := &Level{
		Solids:   make([]*gobrush.Solid, 0, len(in.Solids)),
		Textures: gobrush.TextureSizes(in.Textures),
	}
	for si, fs := range in.Solids {
		s := &gobrush.Solid{Trigger: fs.Trigger, NonSolid: fs.NonSolid}
		for fi, ff := range fs.Faces {
			face, err := ff.face()
			if err != nil {
				return nil, fmt.Errorf("solid %d face %d: %w", si, fi, err)
			}
			s.Faces = append(s.Faces, face)
		}
		lvl.Solids = append(lvl.Solids, s)
	}
	return lvl, nil
}

func (ff fileFace) face() (*gobrush.Face, error) {
	a, b, c := mgl64.Vec3(ff.Points[0]), mgl64.Vec3(ff.Points[1]), mgl64.Vec3(ff.Points[2])
	plane, ok := gobrush.NewPlaneFromPoints(a, b, c)
	if !ok {
		return nil, ErrDegenerateFace
	}
	return &gobrush.Face{
		Plane:    plane,
		Texture:  ff.Texture,
		UAxis:    mgl64.Vec3(ff.U),
		VAxis:    mgl64.Vec3(ff.V),
		XShift:   ff.Shift[0],
		YShift:   ff.Shift[1],
		Rotation: ff.Rotation,
		XScale:   ff.Scale[0],
		YScale:   ff.Scale[1],
		Valve:    ff.Valve,
	}, nil
}
