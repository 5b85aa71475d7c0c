package images

import (
	"bytes"
	"errors"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
)

// isSVG reports if data looks like SVG document. filetype does not sniff
// text formats, so extension is consulted first.
func isSVG(path string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}

// svgDimensions returns size of SVG view box rounded up to whole pixels.
func svgDimensions(r io.Reader) (Dimensions, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return Dimensions{}, err
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return Dimensions{}, errors.New("svg has no intrinsic size (view box is empty)")
	}
	return Dimensions{Width: w, Height: h}, nil
}
