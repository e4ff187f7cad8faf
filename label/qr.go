package label

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// bilevel is the palette of every canvas and QR bitmap. Index 0 is black
// foreground, index 1 white background.
var bilevel = color.Palette{color.Black, color.White}

const (
	black uint8 = 0
	white uint8 = 1
)

// EncodeQR renders payload as a QR symbol with medium error correction and
// no quiet zone. Each module becomes a moduleSize x moduleSize block. The
// encoder picks the smallest symbol version that holds the payload.
func EncodeQR(payload string, moduleSize int) (*image.Paletted, error) {
	if moduleSize <= 0 {
		return nil, fmt.Errorf("invalid qr module size %d", moduleSize)
	}

	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr %q: %w", payload, err)
	}
	q.DisableBorder = true
	bits := q.Bitmap()

	side := len(bits) * moduleSize
	img := image.NewPaletted(image.Rect(0, 0, side, side), bilevel)
	for y, row := range bits {
		for x, set := range row {
			idx := white
			if set {
				idx = black
			}
			fillRect(img, image.Rect(x*moduleSize, y*moduleSize, (x+1)*moduleSize, (y+1)*moduleSize), idx)
		}
	}
	return img, nil
}

func fillRect(img *image.Paletted, r image.Rectangle, idx uint8) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = idx
		}
	}
}
