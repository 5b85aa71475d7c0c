package images

import (
	"context"
	"testing"
)

func TestFileProber_Raster(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		w, h int
	}{
		{"icon.png", 16, 24},
		{"photo.jpg", 40, 30},
		{"anim.gif", 7, 9},
		{"icon@2x.png", 32, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.name, tt.w, tt.h)
			for _, orient := range []bool{false, true} {
				dim, err := FileProber{AutoOrientation: orient}.Probe(context.Background(), path)
				if err != nil {
					t.Fatalf("Probe() error = %v", err)
				}
				if dim.Width != tt.w || dim.Height != tt.h {
					t.Errorf("Probe(auto orientation %v) = %dx%d, want %dx%d", orient, dim.Width, dim.Height, tt.w, tt.h)
				}
			}
		})
	}
}

func TestFileProber_SVG(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "logo.svg",
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50.5"><rect width="100" height="50"/></svg>`))
	dim, err := FileProber{}.Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if dim.Width != 100 || dim.Height != 51 {
		t.Errorf("Probe() = %dx%d, want 100x51", dim.Width, dim.Height)
	}

	// no view box - no size
	path = writeFile(t, dir, "empty.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	if _, err := (FileProber{}).Probe(context.Background(), path); err == nil {
		t.Error("Probe() expected error for SVG without view box")
	}
}

func TestFileProber_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := (FileProber{}).Probe(context.Background(), dir+"/absent.png"); err == nil {
			t.Error("Probe() expected error for missing file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, dir, "null.png", nil)
		if _, err := (FileProber{}).Probe(context.Background(), path); err == nil {
			t.Error("Probe() expected error for empty file")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		path := writeFile(t, dir, "notes.png", []byte("this is plain text pretending to be png"))
		if _, err := (FileProber{}).Probe(context.Background(), path); err == nil {
			t.Error("Probe() expected error for text file")
		}
	})

	t.Run("truncated image", func(t *testing.T) {
		// PNG signature followed by garbage
		data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 1, 2, 3}
		path := writeFile(t, dir, "broken.png", data)
		if _, err := (FileProber{}).Probe(context.Background(), path); err == nil {
			t.Error("Probe() expected error for truncated image")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeImage(t, dir, "ok.png", 2, 2)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := (FileProber{}).Probe(ctx, path); err == nil {
			t.Error("Probe() expected error for cancelled context")
		}
	})
}

func TestIsImage(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"png", writeImage(t, dir, "a.png", 2, 2), true},
		{"jpeg", writeImage(t, dir, "b.jpg", 2, 2), true},
		{"svg", writeFile(t, dir, "c.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"/>`)), true},
		{"svg without extension", writeFile(t, dir, "d", []byte(`<?xml version="1.0"?><svg viewBox="0 0 1 1"/>`)), true},
		{"text", writeFile(t, dir, "e.txt", []byte("hello")), false},
		{"empty", writeFile(t, dir, "f.png", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsImage(tt.path)
			if err != nil {
				t.Fatalf("IsImage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsImage() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := IsImage(dir + "/absent"); err == nil {
		t.Error("IsImage() expected error for missing file")
	}
}
