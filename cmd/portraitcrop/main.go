// portraitcrop extracts every character portrait from a game's packed
// portrait atlas assets into standalone images of the canonical size.
//
// The input path may be a folder of loose asset files (MonoBehaviour/ +
// Texture2D/) or a zip package holding the same layout.
//
// Usage:
//
//	portraitcrop -input path/to/assets [-out dir] [-format png|webp]
package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-portraits/crop"
	"badc0de.net/pkg/go-portraits/hub"
	"badc0de.net/pkg/go-portraits/store"
)

var (
	inputPath  = flag.String("input", "", "path to the asset folder or zip package")
	outputDir  = flag.String("out", "", "output folder; defaults to _output/<date>-<format>")
	formatName = flag.String("format", "png", "output image format (png or webp)")
)

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	format, err := crop.ParseFormat(*formatName)
	if err != nil {
		glog.Exit(err)
	}
	if *inputPath == "" {
		glog.Exit("no input path; pass the asset folder or zip package with -input")
	}

	outDir := *outputDir
	if outDir == "" {
		outDir = filepath.Join("_output",
			fmt.Sprintf("%s-%s", time.Now().Format("2006-01-02"), format))
	}

	st, err := store.Open(*inputPath)
	if err != nil {
		glog.Exit(err)
	}

	h, err := hub.Build(st)
	if err != nil {
		glog.Exit(err)
	}
	fmt.Printf("Loaded [%d/%d] sprite data, from [%d/%d] atlas(-es).\n",
		h.LoadedSpriteCount, h.SpriteCount, h.LoadedAtlasCount, h.AtlasCount)

	eng := &crop.Engine{Store: st, OutDir: outDir, Format: format}
	processed, err := eng.Reconstruct(h)
	if err != nil {
		glog.Exit(err)
	}
	fmt.Printf("Processed [%d/%d] portraits.\n", processed, h.LoadedSpriteCount)
}
