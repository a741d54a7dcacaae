package materify

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// pixelGrid is the normalized working raster: interleaved RGB bytes at a
// fixed resolution. It is built once by the loader and only read by the
// downstream stages.
type pixelGrid struct {
	w, h int
	pix  []uint8 // len = w*h*3, RGB channel order
}

func (g *pixelGrid) at(x, y int) (r, gr, b uint8) {
	off := (y*g.w + x) * 3
	return g.pix[off], g.pix[off+1], g.pix[off+2]
}

func (g *pixelGrid) empty() bool {
	return g == nil || g.w == 0 || g.h == 0 || len(g.pix) == 0
}

// luminance returns the grid as a single-channel BT.601 luma plane.
// Fixed-point weights: (19595*R + 38470*G + 7471*B) >> 16.
func (g *pixelGrid) luminance() []uint8 {
	lum := make([]uint8, g.w*g.h)
	for i := range lum {
		off := i * 3
		r := uint32(g.pix[off])
		gr := uint32(g.pix[off+1])
		b := uint32(g.pix[off+2])
		lum[i] = uint8((19595*r + 38470*gr + 7471*b) >> 16)
	}
	return lum
}

// hsvAt returns hue in degrees [0,360) and saturation/value in [0,1]
// for the pixel at flat index i.
func (g *pixelGrid) hsvAt(i int) (hue, sat, val float64) {
	off := i * 3
	c := colorful.Color{
		R: float64(g.pix[off]) / 255.0,
		G: float64(g.pix[off+1]) / 255.0,
		B: float64(g.pix[off+2]) / 255.0,
	}
	return c.Hsv()
}

// image re-wraps the grid as an image.Image, for fingerprinting.
func (g *pixelGrid) image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, g.w, g.h))
	for i := 0; i < g.w*g.h; i++ {
		off := i * 3
		img.SetRGBA(i%g.w, i/g.w, color.RGBA{g.pix[off], g.pix[off+1], g.pix[off+2], 255})
	}
	return img
}
