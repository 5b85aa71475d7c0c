package common

import "errors"

// Error kinds. Errors returned by generation pipeline wrap one of those, use
// errors.Is to classify.
var (
	// ErrIO - source image could not be read or probed.
	ErrIO = errors.New("image io error")
	// ErrTemplateLoad - required template could not be loaded or parsed.
	ErrTemplateLoad = errors.New("template load error")
	// ErrConfiguration - malformed selector pattern.
	ErrConfiguration = errors.New("configuration error")
	// ErrRender - template execution failed.
	ErrRender = errors.New("render error")
	// ErrName - selector cannot be derived from file name.
	ErrName = errors.New("invalid image name")
)
