package photo

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestGenerateFitsWithinMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 800, 400)

	g := NewGenerator(200, 80, 2, nil)
	data, err := g.Generate(context.Background(), path)
	require.NoError(t, err)

	w, h := decodedSize(t, data)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestGenerateUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 64, 64)

	cache, err := OpenDiskCache(filepath.Join(dir, "cache", "thumbs.db"))
	require.NoError(t, err)
	defer cache.Close()

	g := NewGenerator(32, 80, 1, cache)
	first, err := g.Generate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, os.Remove(path))
	_, err = g.Generate(context.Background(), path)
	require.Error(t, err, "stat happens before the cache lookup")

	writePNG(t, path, 64, 64)
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, cache.Put(CacheKey(path, info.Size(), info.ModTime()), first))
	again, err := g.Generate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGenerateConcurrentSamePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 300, 300)
	g := NewGenerator(50, 80, 4, nil)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := g.Generate(context.Background(), path)
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(0, 0, 0, nil)
	assert.Equal(t, DefaultThumbSize, g.MaxSize)
	assert.Equal(t, DefaultThumbQuality, g.Quality)

	_, err := g.Generate(context.Background(), filepath.Join(dir, "missing.jpg"))
	var te *ThumbnailError
	require.True(t, errors.As(err, &te))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = g.Generate(context.Background(), bad)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestApplyOrientationSwapsAxes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	assert.Equal(t, 10, applyOrientation(img, 6).Bounds().Dx())
	assert.Equal(t, 40, applyOrientation(img, 3).Bounds().Dx())
	assert.Same(t, img, applyOrientation(img, 1))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.png")
	writePNG(t, path, 120, 80)

	r := NewResolver(NewGenerator(60, 80, 1, nil))
	rec, err := r.Resolve(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, rec.Path)
	assert.Equal(t, "plain.png", rec.Filename)
	assert.Positive(t, rec.FileSize)
	assert.WithinDuration(t, time.Now(), rec.ModTime, time.Minute)
	assert.Nil(t, rec.Exif, "PNG written by the encoder has no EXIF block")
	assert.NotEmpty(t, rec.Thumbnail)
}

func TestResolveKeepsRecordWhenThumbnailFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	rec, err := NewResolver(NewGenerator(60, 80, 1, nil)).Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, rec.Thumbnail)
}

func TestResolveErrors(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(nil)

	_, err := r.Resolve(context.Background(), dir)
	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, dir, re.Path)

	_, err = r.Resolve(context.Background(), filepath.Join(dir, "gone.jpg"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Resolve(ctx, filepath.Join(dir, "any.jpg"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReadExifWithoutBlock(t *testing.T) {
	e, err := ReadExif(bytes.NewReader([]byte("no exif here")))
	assert.NoError(t, err)
	assert.Nil(t, e)
	assert.False(t, e.HasGPS())
	assert.False(t, e.HasDateTime())
}
