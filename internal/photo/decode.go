package photo

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for formats that cannot be decoded on this platform.
var ErrUnsupported = errors.New("unsupported image format")

func isHEIC(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".heic" || ext == ".heif"
}

// decodeFile decodes the image at path.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, path)
}

func decode(r io.Reader, path string) (image.Image, error) {
	if isHEIC(path) {
		if !heicSupported() {
			return nil, ErrUnsupported
		}
		return decodeHEIC(r)
	}
	img, _, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupported
	}
	return img, err
}

// dimensions reads the pixel size without decoding the whole image.
func dimensions(path string) (int, int, error) {
	if isHEIC(path) {
		return 0, 0, ErrUnsupported
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// HEICSupported reports whether .heic files can be rendered here.
func HEICSupported() bool { return heicSupported() }
