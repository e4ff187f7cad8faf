package label

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// decodeQR decodes a borderless QR bitmap after adding a quiet zone.
func decodeQR(t *testing.T, qr image.Image, margin int) string {
	t.Helper()
	b := qr.Bounds()
	padded := image.NewGray(image.Rect(0, 0, b.Dx()+2*margin, b.Dy()+2*margin))
	draw.Draw(padded, padded.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(padded, b.Sub(b.Min).Add(image.Pt(margin, margin)), qr, b.Min, draw.Src)

	bmp, err := gozxing.NewBinaryBitmapFromImage(padded)
	if err != nil {
		t.Fatalf("binary bitmap: %v", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode qr: %v", err)
	}
	return result.GetText()
}

func TestEncodeQRRoundTrip(t *testing.T) {
	for _, payload := range []string{"00000", "00007", "12345", "99999"} {
		t.Run(payload, func(t *testing.T) {
			qr, err := EncodeQR(payload, 10)
			if err != nil {
				t.Fatal(err)
			}
			if got := decodeQR(t, qr, 40); got != payload {
				t.Errorf("decoded %q, want %q", got, payload)
			}
		})
	}
}

func TestEncodeQRSize(t *testing.T) {
	// A 5-digit payload fits a version 1 symbol (21x21 modules).
	for _, module := range []int{1, 30, 32} {
		qr, err := EncodeQR("00000", module)
		if err != nil {
			t.Fatal(err)
		}
		want := 21 * module
		if b := qr.Bounds(); b.Dx() != want || b.Dy() != want {
			t.Errorf("module %d: size %v, want %dx%d", module, b.Size(), want, want)
		}
		if len(qr.Palette) != 2 {
			t.Errorf("module %d: palette has %d colors, want 2", module, len(qr.Palette))
		}
	}
}

func TestEncodeQRNoBorder(t *testing.T) {
	qr, err := EncodeQR("00000", 4)
	if err != nil {
		t.Fatal(err)
	}
	// Finder patterns start at the very corner when there is no quiet zone.
	if qr.ColorIndexAt(0, 0) != black {
		t.Error("top-left pixel is not black")
	}
	b := qr.Bounds()
	if qr.ColorIndexAt(b.Max.X-1, 0) != black || qr.ColorIndexAt(0, b.Max.Y-1) != black {
		t.Error("finder pattern corners are not black")
	}
}

func TestEncodeQRBadModuleSize(t *testing.T) {
	if _, err := EncodeQR("00000", 0); err == nil {
		t.Error("expected error for zero module size")
	}
}
