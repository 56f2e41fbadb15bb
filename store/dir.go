package store

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	// Surface decode formats. Textures normally arrive as png; webp shows
	// up in repacked asset dumps.
	_ "image/png"

	_ "github.com/chai2010/webp"
)

// Layout used by common asset rippers: one folder with the metadata
// records, one with the textures.
const (
	recordDir  = "MonoBehaviour"
	surfaceDir = "Texture2D"
)

// surfaceExts are the texture formats a ripped asset dump may contain,
// in lookup order.
var surfaceExts = []string{".png", ".webp"}

// Dir is a Store over a folder of loose asset files.
type Dir struct {
	root string
}

// OpenDir opens root, which must contain the record and texture folders.
func OpenDir(root string) (*Dir, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "opening asset folder %q", root)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("asset path %q is not a folder", root)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Record(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.root, recordDir, name+".json"))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "record %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening record %q", name)
	}
	return f, nil
}

func (d *Dir) Surface(name string) (image.Image, error) {
	var f *os.File
	var err error
	for _, ext := range surfaceExts {
		f, err = os.Open(filepath.Join(d.root, surfaceDir, name+ext))
		if err == nil || !os.IsNotExist(err) {
			break
		}
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "surface %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening surface %q", name)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding surface %q", name)
	}
	return img, nil
}
