// Command brushview builds a JSON brush level and opens it in a preview
// window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/smasonuk/gobrush"
	"github.com/smasonuk/gobrush/internal/brushfile"
	"github.com/smasonuk/gobrush/preview"
)

func main() {
	var (
		in   = flag.String("in", "", "level file (JSON)")
		weld = flag.Float64("weld", gobrush.DefaultWeldThreshold, "weld threshold in map units, 0 disables")
		cull = flag.Bool("cull", true, "cull faces hidden between touching solids")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("Loading level...")
	lvl, err := brushfile.LoadFile(*in)
	if err != nil {
		log.Fatal(err)
	}

	cfg := gobrush.DefaultConfig()
	cfg.WeldThreshold = *weld
	cfg.CullHiddenFaces = *cull
	cfg.ColliderMode = gobrush.ColliderNone
	cfg.Textures = lvl.Textures

	res, err := gobrush.Build(lvl.Solids, cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range res.Warnings {
		log.Println(w)
	}
	log.Printf("Built %d triangles.", res.Stats.Triangles)

	if err := preview.Run("brushview: "+*in, res.Surfaces); err != nil {
		log.Fatal(err)
	}
}
