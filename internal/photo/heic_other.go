//go:build !linux

package photo

import (
	"image"
	"io"
)

func decodeHEIC(io.Reader) (image.Image, error) {
	return nil, ErrUnsupported
}

func heicSupported() bool { return false }
