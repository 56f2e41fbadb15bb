package crop

import (
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-portraits/hub"
	"badc0de.net/pkg/go-portraits/store"
)

// Engine extracts every sprite of a portrait hub into OutDir, one output
// file per sprite, named after the sprite.
type Engine struct {
	Store  store.Store
	OutDir string
	Format Format
}

// Reconstruct processes every atlas descriptor of h, one pool task per
// atlas, and returns the total number of portraits written.
//
// A failing atlas contributes zero to the total and never aborts its
// siblings; failures are logged as they occur. The only error Reconstruct
// itself returns is an unusable output directory.
func (e *Engine) Reconstruct(h *hub.PortraitHub) (int, error) {
	if err := os.MkdirAll(e.OutDir, 0755); err != nil {
		return 0, errors.Wrapf(err, "creating output folder %q", e.OutDir)
	}

	counts := make([]int, len(h.Atlases))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range h.Atlases {
		i := i
		g.Go(func() error {
			n, err := e.processAtlas(&h.Atlases[i], h.SpriteSize)
			if err != nil {
				// A failed atlas contributes nothing to the total; its
				// error stops here, never at a sibling task.
				glog.Errorf("atlas %q: %v", h.Atlases[i].TextureName, err)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// processAtlas composites one atlas surface and extracts every sprite the
// descriptor owns, returning how many portraits it wrote.
//
// An unresolvable texture or mask only skips this atlas. A write failure
// aborts the atlas's remaining sprites and voids its count; files already
// on disk are left behind but not counted.
func (e *Engine) processAtlas(desc *hub.AtlasDescriptor, size hub.SpriteSize) (int, error) {
	tex, err := e.Store.Surface(desc.TextureName)
	if err != nil {
		glog.Warningf("atlas image %q was not found: %v", desc.TextureName, err)
		return 0, nil
	}
	alpha, err := e.Store.Surface(desc.AlphaName)
	if err != nil {
		glog.Warningf("alpha image %q was not found: %v", desc.AlphaName, err)
		return 0, nil
	}

	atlas := Composite(tex, alpha)

	n := 0
	for _, sp := range desc.Sprites {
		portrait := ExtractSprite(atlas, sp, size)
		outPath := filepath.Join(e.OutDir, sp.Name+"."+e.Format.Ext())
		if err := e.writePortrait(outPath, portrait); err != nil {
			return 0, errors.Wrapf(err, "writing sprite %q", sp.Name)
		}
		n++
	}

	glog.Infof("processed %q atlas", desc.TextureName)
	return n, nil
}

func (e *Engine) writePortrait(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Format.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExtractSprite crops sp out of a composited atlas surface and normalizes
// it to the canonical size.
//
// The rect's y runs up from the bottom of the atlas while image space runs
// down from the top, so the crop box flips vertically around the atlas
// height. A plain top-left crop here would mirror every portrait.
func ExtractSprite(atlas image.Image, sp hub.SpriteRecord, size hub.SpriteSize) image.Image {
	height := atlas.Bounds().Dy()
	box := image.Rect(
		sp.Rect.X,
		height-(sp.Rect.Y+sp.Rect.H),
		sp.Rect.X+sp.Rect.W,
		height-sp.Rect.Y,
	)
	portrait := imaging.Crop(atlas, box)

	if sp.Rotate != 0 {
		portrait = imaging.Rotate90(portrait)
	}

	if !canonicalDim(sp.Rect.W, size) || !canonicalDim(sp.Rect.H, size) {
		portrait = padToSize(portrait, size)
	}
	return portrait
}

// canonicalDim reports whether dim matches either canonical dimension. Any
// other value goes through the padding canvas, including sprites that are
// legitimately smaller by design, which matches the packer's own handling
// of off-by-rounding rects.
func canonicalDim(dim int, size hub.SpriteSize) bool {
	return dim == size.Width || dim == size.Height
}

// padToSize pastes portrait onto a fully transparent canvas of the
// canonical size, anchored so its bottom-right corner meets the canvas's
// bottom-right corner. The portrait is never scaled, only placed.
func padToSize(portrait *image.NRGBA, size hub.SpriteSize) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))

	pb := portrait.Bounds()
	dx := size.Width - pb.Dx()
	if dx < 0 {
		dx = 0
	}
	dy := size.Height - pb.Dy()
	if dy < 0 {
		dy = 0
	}
	draw.Draw(canvas, image.Rect(dx, dy, dx+pb.Dx(), dy+pb.Dy()), portrait, pb.Min, draw.Over)
	return canvas
}
