package store

import (
	"archive/zip"
	"image"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Zip is a Store over a zip archive (including .apk packages) holding the
// same record/texture folder layout as a Dir store, possibly nested under an
// arbitrary prefix such as assets/AB/Android/arts/charportraits.
//
// Lookups after OpenZip only read; zip entries open independent readers
// over the underlying file, so a Zip is safe for concurrent use.
type Zip struct {
	rc    *zip.ReadCloser
	files map[string]*zip.File
}

// OpenZip opens the archive at the passed path and indexes its entries.
func OpenZip(zipPath string) (*Zip, error) {
	rc, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, errors.Wrapf(err, "the package %q cannot be parsed", zipPath)
	}

	files := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[layoutKey(f.Name)] = f
	}
	return &Zip{rc: rc, files: files}, nil
}

// Close closes the underlying archive. No lookups may run concurrently with
// or after Close.
func (z *Zip) Close() error {
	return z.rc.Close()
}

func (z *Zip) Record(name string) (io.ReadCloser, error) {
	f, ok := z.files[path.Join(recordDir, name+".json")]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "record %q", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening record %q", name)
	}
	return rc, nil
}

func (z *Zip) Surface(name string) (image.Image, error) {
	var f *zip.File
	var ok bool
	for _, ext := range surfaceExts {
		if f, ok = z.files[path.Join(surfaceDir, name+ext)]; ok {
			break
		}
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "surface %q", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening surface %q", name)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding surface %q", name)
	}
	return img, nil
}

// layoutKey strips any leading archive prefix, keeping only the layout
// folder and the file name.
func layoutKey(entry string) string {
	parts := strings.Split(path.Clean(entry), "/")
	if len(parts) < 2 {
		return entry
	}
	return path.Join(parts[len(parts)-2], parts[len(parts)-1])
}
