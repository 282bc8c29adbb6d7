//go:build linux

package photo

import (
	"image"
	"io"

	"github.com/jdeng/goheif"
)

func decodeHEIC(r io.Reader) (image.Image, error) {
	return goheif.Decode(r)
}

func heicSupported() bool { return true }
