package store

import (
	"archive/zip"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func writeTestAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{recordDir, surfaceDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %s", dir, err)
		}
	}

	rec := filepath.Join(root, recordDir, "portrait_hub.json")
	if err := os.WriteFile(rec, []byte(`{"_sprites": []}`), 0644); err != nil {
		t.Fatalf("failed to write record: %s", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 0xAA, A: 0xFF})
	f, err := os.Create(filepath.Join(root, surfaceDir, "portraits_0.png"))
	if err != nil {
		t.Fatalf("failed to create surface: %s", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode surface: %s", err)
	}
	f.Close()

	return root
}

func TestDirStore(t *testing.T) {
	st, err := OpenDir(writeTestAssets(t))
	if err != nil {
		t.Fatalf("failed to open dir store: %s", err)
	}

	rc, err := st.Record("portrait_hub")
	if err != nil {
		t.Fatalf("failed to fetch record: %s", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("failed to read record: %s", err)
	}
	if string(data) != `{"_sprites": []}` {
		t.Errorf("record content: got %q", data)
	}

	img, err := st.Surface("portraits_0")
	if err != nil {
		t.Fatalf("failed to fetch surface: %s", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("surface bounds: got %v", img.Bounds())
	}

	if _, err := st.Record("no_such_record"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record: got %v; want ErrNotFound", err)
	}
	if _, err := st.Surface("no_such_surface"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing surface: got %v; want ErrNotFound", err)
	}
}

func writeTestZip(t *testing.T, prefix string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "assets.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("failed to create zip: %s", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(prefix + recordDir + "/portrait_hub.json")
	if err != nil {
		t.Fatalf("failed to add record: %s", err)
	}
	w.Write([]byte(`{"_sprites": []}`))

	w, err = zw.Create(prefix + surfaceDir + "/portraits_0.png")
	if err != nil {
		t.Fatalf("failed to add surface: %s", err)
	}
	if err := png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode surface: %s", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %s", err)
	}
	return zipPath
}

func TestZipStore(t *testing.T) {
	// Packages bury the asset layout under a platform prefix; lookups must
	// still resolve.
	st, err := OpenZip(writeTestZip(t, "assets/AB/Android/arts/charportraits/"))
	if err != nil {
		t.Fatalf("failed to open zip store: %s", err)
	}
	defer st.Close()

	rc, err := st.Record("portrait_hub")
	if err != nil {
		t.Fatalf("failed to fetch record: %s", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != `{"_sprites": []}` {
		t.Errorf("record content: got %q", data)
	}

	img, err := st.Surface("portraits_0")
	if err != nil {
		t.Fatalf("failed to fetch surface: %s", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("surface bounds: got %v", img.Bounds())
	}

	if _, err := st.Record("no_such_record"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record: got %v; want ErrNotFound", err)
	}
}

func TestOpen(t *testing.T) {
	st, err := Open(writeTestAssets(t))
	if err != nil {
		t.Fatalf("failed to open folder: %s", err)
	}
	if _, ok := st.(*Dir); !ok {
		t.Errorf("folder path: got %T; want *Dir", st)
	}

	st, err = Open(writeTestZip(t, ""))
	if err != nil {
		t.Fatalf("failed to open zip: %s", err)
	}
	if _, ok := st.(*Zip); !ok {
		t.Errorf("zip path: got %T; want *Zip", st)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("open of a missing path succeeded; want error")
	}
}
