// Package store resolves portrait asset names to metadata records and pixel
// surfaces, without caring where the assets live: a folder of loose files
// and a zip package are both supported.
package store

import (
	"image"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrNotFound reports that a store holds no asset under the requested name.
// Callers use errors.Is to tell a soft miss from a real failure.
var ErrNotFound = errors.New("asset not found")

// Store resolves asset names.
//
// Implementations must be safe for concurrent reads: the reconstruction
// engine queries one store from many goroutines at once, but never mutates
// it after opening.
type Store interface {
	// Record returns the metadata record stored under name. The caller
	// closes the reader.
	Record(name string) (io.ReadCloser, error)
	// Surface returns the decoded pixel surface stored under name.
	Surface(name string) (image.Image, error)
}

// Open opens path as a Dir store when it names a directory, and as a Zip
// store otherwise.
//
// A Zip store keeps its archive open for the lifetime of the process; batch
// tools that run to completion don't need to close it.
func Open(path string) (Store, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "incorrect path %q", path)
	}
	if fi.IsDir() {
		return OpenDir(path)
	}
	return OpenZip(path)
}
