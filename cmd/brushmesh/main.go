// Command brushmesh builds render surfaces and colliders from a JSON brush
// level and writes the mesh as PLY and/or DXF.
package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/smasonuk/gobrush"
	"github.com/smasonuk/gobrush/internal/brushfile"
)

func main() {
	def := gobrush.DefaultConfig()
	var (
		in       = flag.String("in", "", "level file (JSON)")
		plyOut   = flag.String("ply", "", "write surfaces as PLY to this file")
		dxfOut   = flag.String("dxf", "", "write surfaces as DXF to this file")
		weld     = flag.Float64("weld", def.WeldThreshold, "weld threshold in map units, 0 disables")
		scale    = flag.Float64("scale", def.WorldScale, "map to world scale")
		texel    = flag.Float64("texel", def.TexelScale, "texture coordinate scale")
		cull     = flag.Bool("cull", def.CullHiddenFaces, "cull faces hidden between touching solids")
		collider = flag.String("collider", def.ColliderMode.String(), "collider mode: none, boxonly, convexonly, boxandconvex, mergedconcave")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	gobrush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := gobrush.ParseColliderMode(*collider)
	if err != nil {
		log.Fatal(err)
	}

	lvl, err := brushfile.LoadFile(*in)
	if err != nil {
		log.Fatal(err)
	}

	cfg := def
	cfg.WeldThreshold = *weld
	cfg.WorldScale = *scale
	cfg.TexelScale = *texel
	cfg.CullHiddenFaces = *cull
	cfg.ColliderMode = mode
	cfg.Textures = lvl.Textures

	res, err := gobrush.Build(lvl.Solids, cfg)
	if err != nil {
		log.Fatal(err)
	}

	st := res.Stats
	log.Printf("%d solids, %d/%d faces with geometry, %d culled, %d surfaces, %d triangles, %d colliders, %d warnings in %v",
		st.Solids, st.Geometry, st.Faces, st.Culled, len(res.Surfaces), st.Triangles, st.Colliders, len(res.Warnings), st.Elapsed)

	if *plyOut != "" {
		if err := writeFile(*plyOut, res.Surfaces, gobrush.WritePLY); err != nil {
			log.Fatal(err)
		}
		log.Printf("PLY saved to %s", *plyOut)
	}
	if *dxfOut != "" {
		if err := writeFile(*dxfOut, res.Surfaces, gobrush.WriteDXF); err != nil {
			log.Fatal(err)
		}
		log.Printf("DXF saved to %s", *dxfOut)
	}
}

func writeFile(path string, surfaces []*gobrush.Surface, write func(io.Writer, []*gobrush.Surface) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, surfaces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
