package images

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// headerSize is how much filetype needs to recognize any known type.
const headerSize = 261

// Prober returns intrinsic size of the image file.
type Prober interface {
	Probe(ctx context.Context, path string) (Dimensions, error)
}

// ProberFunc adapts ordinary function to Prober.
type ProberFunc func(ctx context.Context, path string) (Dimensions, error)

func (f ProberFunc) Probe(ctx context.Context, path string) (Dimensions, error) {
	return f(ctx, path)
}

// FileProber reads image headers from the file system. Supported are GIF,
// JPEG, PNG, BMP, TIFF, WebP and SVG.
type FileProber struct {
	// AutoOrientation makes JPEG images with EXIF orientation report size
	// as they are displayed by browsers (rotated), rather than stored.
	AutoOrientation bool
}

// Probe implements Prober.
func (p FileProber) Probe(ctx context.Context, path string) (Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return Dimensions{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, err
	}
	defer f.Close()

	head, err := readHeader(f)
	if err != nil {
		return Dimensions{}, err
	}
	if len(head) == 0 {
		return Dimensions{}, errors.New("file is empty")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Dimensions{}, err
	}

	if isSVG(path, head) {
		return svgDimensions(f)
	}

	kind, err := filetype.Match(head)
	if err != nil {
		return Dimensions{}, err
	}
	if kind.MIME.Type != "image" {
		return Dimensions{}, fmt.Errorf("not an image (detected type %q)", kind.MIME.Value)
	}

	if kind == matchers.TypeJpeg && p.AutoOrientation {
		img, err := imaging.Decode(f, imaging.AutoOrientation(true))
		if err != nil {
			return Dimensions{}, fmt.Errorf("unable to decode %s: %w", kind.Extension, err)
		}
		return Dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("unable to decode %s header: %w", kind.Extension, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

func readHeader(r io.Reader) ([]byte, error) {
	head := make([]byte, headerSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

// IsImage checks whether content of the file is recognized as an image. Name
// is only consulted for SVG.
func IsImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHeader(f)
	if err != nil {
		return false, err
	}
	if len(head) == 0 {
		return false, nil
	}
	if isSVG(path, head) {
		return true, nil
	}
	return filetype.IsImage(head), nil
}
