// Package images collects metadata of source images: selector, density ratio,
// URL relative to the stylesheet and intrinsic pixel size.
package images

import "imgrule/common"

// Dimensions is intrinsic pixel size of an image.
type Dimensions struct {
	Width  int
	Height int
}

// Record describes single image. Records are never modified after Collect
// returns them.
type Record struct {
	// Path is the image location as it was given, never rendered by default
	// templates.
	Path string
	// URL is location of the image relative to stylesheet directory, always
	// with forward slashes.
	URL        string
	Selector   string
	Ratio      common.Ratio
	Dimensions Dimensions
}
