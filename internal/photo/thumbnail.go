package photo

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	"github.com/justyntemme/photogeoview/internal/debug"
)

const (
	DefaultThumbSize    = 200
	DefaultThumbQuality = 80
)

// Cache is the persistent store consulted before rendering.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte) error
}

// Generator renders JPEG thumbnails. Concurrent requests for the same file
// share one render.
type Generator struct {
	MaxSize int
	Quality int
	cache   Cache
	group   singleflight.Group
	sem     chan struct{}
}

// NewGenerator returns a Generator running at most workers renders at once.
// cache may be nil.
func NewGenerator(maxSize, quality, workers int, cache Cache) *Generator {
	if maxSize <= 0 {
		maxSize = DefaultThumbSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultThumbQuality
	}
	if workers <= 0 {
		workers = 4
	}
	return &Generator{
		MaxSize: maxSize,
		Quality: quality,
		cache:   cache,
		sem:     make(chan struct{}, workers),
	}
}

// Generate returns the encoded thumbnail for path. Errors are *ThumbnailError.
func (g *Generator) Generate(ctx context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ThumbnailError{Path: path, Err: err}
	}
	key := CacheKey(path, info.Size(), info.ModTime())
	if g.cache != nil {
		if data, ok := g.cache.Get(key); ok {
			debug.Log(debug.THUMB, "thumbnail cache hit: %s", path)
			return data, nil
		}
	}

	v, err, shared := g.group.Do(key, func() (interface{}, error) {
		select {
		case g.sem <- struct{}{}:
			defer func() { <-g.sem }()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return g.render(path)
	})
	if err != nil {
		return nil, &ThumbnailError{Path: path, Err: err}
	}
	data := v.([]byte)
	if shared {
		debug.Log(debug.THUMB, "thumbnail shared render: %s", path)
	}
	if g.cache != nil {
		if err := g.cache.Put(key, data); err != nil {
			debug.Log(debug.THUMB, "thumbnail cache put %s: %v", path, err)
		}
	}
	return data, nil
}

func (g *Generator) render(path string) ([]byte, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	img = applyOrientation(img, orientationOf(path))
	thumb := imaging.Fit(img, g.MaxSize, g.MaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: g.Quality}); err != nil {
		return nil, err
	}
	debug.Log(debug.THUMB, "rendered %s (%d bytes)", path, buf.Len())
	return buf.Bytes(), nil
}

func orientationOf(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()
	if e, _ := ReadExif(f); e != nil {
		return e.Orientation
	}
	return 1
}

// applyOrientation undoes the camera rotation recorded in EXIF.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
