// portraitprint extracts a single character portrait and draws it on the
// terminal, for quickly eyeballing an atlas without writing files.
//
// Kitty, iTerm/WezTerm and sixel-capable terminals are supported.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"

	"badc0de.net/pkg/go-portraits/crop"
	"badc0de.net/pkg/go-portraits/hub"
	"badc0de.net/pkg/go-portraits/store"
)

var (
	inputPath  = flag.String("input", "", "path to the asset folder or zip package")
	spriteName = flag.String("name", "", "name of the portrait to print")
	fullSize   = flag.Bool("fullsize", false, "whether to skip downsizing to the terminal size")
)

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	if *inputPath == "" || *spriteName == "" {
		glog.Exit("usage: portraitprint -input <assets> -name <sprite>")
	}

	st, err := store.Open(*inputPath)
	if err != nil {
		glog.Exit(err)
	}
	h, err := hub.Build(st)
	if err != nil {
		glog.Exit(err)
	}

	img, err := extract(st, h, *spriteName)
	if err != nil {
		glog.Exit(err)
	}
	if !*fullSize {
		img = downsize(img)
	}
	if err := printImage(img); err != nil {
		glog.Exit(err)
	}
}

func extract(st store.Store, h *hub.PortraitHub, name string) (image.Image, error) {
	for i := range h.Atlases {
		desc := &h.Atlases[i]
		for _, sp := range desc.Sprites {
			if sp.Name != name {
				continue
			}
			tex, err := st.Surface(desc.TextureName)
			if err != nil {
				return nil, err
			}
			alpha, err := st.Surface(desc.AlphaName)
			if err != nil {
				return nil, err
			}
			return crop.ExtractSprite(crop.Composite(tex, alpha), sp, h.SpriteSize), nil
		}
	}
	return nil, errors.Errorf("portrait %q not found in any loaded atlas", name)
}

func downsize(img image.Image) image.Image {
	w, h, err := terminal.GetSize(0)
	if err != nil {
		w, h = 80, 25
	}
	return resize.Thumbnail(uint(w/2), uint(h), img, resize.Lanczos3)
}

func printImage(img image.Image) error {
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(os.Stdout, img); err != nil {
			return err
		}
		fmt.Printf("\n")
		return nil
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(os.Stdout, img); err != nil {
			return err
		}
		fmt.Printf("\n")
		return nil
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		paletted := image.NewPaletted(img.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(paletted, img.Bounds(), img, image.ZP)
		if err := (rasterm.Settings{}).SixelWriteImage(os.Stdout, paletted); err != nil {
			return err
		}
		fmt.Printf("\n")
		return nil
	}
	return errors.New("terminal does not support inline images")
}
