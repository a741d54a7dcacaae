package materify

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/bep/imagemeta"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad indicates the source image could not be decoded. This is
// fatal to the whole analysis; there is no partial result.
var ErrImageLoad = errors.New("materify: image load failed")

// loadPixelGrid decodes the image at path and normalizes it to a
// size×size RGB raster. The channel order is coerced to RGB before
// resize: the scoring thresholds are calibrated against RGB, and a
// channel-order mistake silently inverts plastic/metal/glass detection.
func loadPixelGrid(path string, size int) (*pixelGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}
	return decodePixelGrid(data, size)
}

// loadPixelGridReader is loadPixelGrid for callers that already hold the
// encoded bytes (e.g. an upload stream).
func loadPixelGridReader(r io.Reader, size int) (*pixelGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return decodePixelGrid(data, size)
}

func decodePixelGrid(data []byte, size int) (*pixelGrid, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty source", ErrImageLoad)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("%w: zero-size image", ErrImageLoad)
	}

	// Upright the raster before resize so contour aspect ratios don't
	// depend on how the camera was held.
	img = applyOrientation(img, exifOrientation(data))

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	grid := &pixelGrid{
		w:   size,
		h:   size,
		pix: make([]uint8, size*size*3),
	}
	for i := 0; i < size*size; i++ {
		src := i * 4
		off := i * 3
		grid.pix[off] = dst.Pix[src]
		grid.pix[off+1] = dst.Pix[src+1]
		grid.pix[off+2] = dst.Pix[src+2]
	}
	return grid, nil
}

// exifOrientation reads the EXIF Orientation tag (1..8) from raw image
// bytes. Returns 1 (upright) on any failure — orientation is advisory.
func exifOrientation(data []byte) int {
	orientation := 1

	err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "Orientation"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if v, ok := tagValueInt(ti.Value); ok && v >= 1 && v <= 8 {
				orientation = v
			}
			return nil
		},
	})
	if err != nil {
		return 1
	}
	return orientation
}

// tagValueInt extracts an integer from an EXIF tag value. EXIF short
// values surface with varying integer widths depending on the encoder.
func tagValueInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint16:
		return int(val), true
	case uint32:
		return int(val), true
	case uint64:
		return int(val), true
	default:
		return 0, false
	}
}

// applyOrientation maps an image to upright per the EXIF orientation
// values 1..8. Unknown values pass the image through unchanged.
func applyOrientation(img image.Image, orientation int) image.Image {
	if orientation <= 1 || orientation > 8 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	ow, oh := w, h
	if orientation >= 5 { // 90°/270° variants swap dimensions
		ow, oh = h, w
	}

	out := image.NewRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch orientation {
			case 2: // mirror horizontal
				dx, dy = w-1-x, y
			case 3: // rotate 180
				dx, dy = w-1-x, h-1-y
			case 4: // mirror vertical
				dx, dy = x, h-1-y
			case 5: // mirror horizontal + rotate 270 CW
				dx, dy = y, x
			case 6: // rotate 90 CW
				dx, dy = h-1-y, x
			case 7: // mirror horizontal + rotate 90 CW
				dx, dy = h-1-y, w-1-x
			case 8: // rotate 270 CW
				dx, dy = y, w-1-x
			}
			out.Set(dx, dy, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
