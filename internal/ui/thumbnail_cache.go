package ui

import (
	"image"

	"gioui.org/op/paint"
)

// imageCache keeps one ImageOp per thumbnail so GPU textures are uploaded
// once, not every frame. Entries are replaced when the source image changes.
type imageCache struct {
	ops map[string]cachedImage
}

type cachedImage struct {
	src image.Image
	op  paint.ImageOp
}

func (c *imageCache) get(path string, img image.Image) paint.ImageOp {
	if c.ops == nil {
		c.ops = make(map[string]cachedImage)
	}
	if e, ok := c.ops[path]; ok && e.src == img {
		return e.op
	}
	op := paint.NewImageOp(img)
	c.ops[path] = cachedImage{src: img, op: op}
	return op
}

func (c *imageCache) reset() {
	c.ops = nil
}

func (c *imageCache) len() int { return len(c.ops) }
