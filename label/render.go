package label

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Artifact is one rendered canvas together with its output file name.
type Artifact struct {
	Name  string
	Image *image.Paletted
}

// Renderer turns tag numbers into label images for one layout. It is safe
// for concurrent use; font faces are created per call.
type Renderer struct {
	layout Layout
	fonts  map[FontRole]*opentype.Font
}

// NewRenderer validates layout and loads every font it needs. A font that
// cannot be resolved fails here, before anything is drawn.
func NewRenderer(layout Layout, fonts FontSet) (*Renderer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		layout: layout,
		fonts:  make(map[FontRole]*opentype.Font),
	}
	for _, role := range layout.fontRoles() {
		name, err := fonts.Name(role)
		if err != nil {
			return nil, err
		}
		f, err := LoadFont(name, fonts.Dirs)
		if err != nil {
			return nil, err
		}
		r.fonts[role] = f
	}
	return r, nil
}

// Layout returns the layout the renderer draws.
func (r *Renderer) Layout() Layout { return r.layout }

// Render draws every canvas of the layout for tag n. Each canvas is a
// freshly allocated white 1-bit image.
func (r *Renderer) Render(n int) ([]Artifact, error) {
	out := make([]Artifact, 0, len(r.layout.Canvases))
	for i := range r.layout.Canvases {
		a, err := r.RenderCanvas(n, i)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// RenderCanvas draws only canvas index of the layout for tag n.
func (r *Renderer) RenderCanvas(n, index int) (Artifact, error) {
	if err := ValidateTag(n); err != nil {
		return Artifact{}, err
	}
	if index < 0 || index >= len(r.layout.Canvases) {
		return Artifact{}, fmt.Errorf("layout %q has no canvas %d", r.layout.Name, index)
	}
	c := r.layout.Canvases[index]
	id := FormatID(n)

	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	img := image.NewPaletted(image.Rect(0, 0, c.Width, c.Height), bilevel)
	fillRect(img, img.Rect, white)

	for i, op := range c.Ops {
		var err error
		switch op.Kind {
		case OpText:
			err = r.drawText(img, faces, op, id)
		case OpQR:
			err = drawQR(img, op, id)
		}
		if err != nil {
			return Artifact{}, fmt.Errorf("render %s canvas %q op %d: %w", id, c.Suffix, i, err)
		}
	}
	return Artifact{Name: c.FileName(n), Image: img}, nil
}

type faceKey struct {
	role FontRole
	size float64
}

func (r *Renderer) drawText(img *image.Paletted, faces map[faceKey]font.Face, op Op, id string) error {
	role := op.Font
	if role == "" {
		role = Regular
	}
	key := faceKey{role, op.Size}
	face, ok := faces[key]
	if !ok {
		var err error
		face, err = opentype.NewFace(r.fonts[role], &opentype.FaceOptions{
			Size:    op.Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("create font face: %w", err)
		}
		faces[key] = face
	}

	// The op offset is the top-left corner of the line box, so the
	// baseline sits one ascent below it.
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(op.X), Y: fixed.I(op.Y) + face.Metrics().Ascent},
	}
	d.DrawString(strings.ReplaceAll(op.Text, IDPlaceholder, id))
	return nil
}

func drawQR(img *image.Paletted, op Op, id string) error {
	qr, err := EncodeQR(id, op.ModuleSize)
	if err != nil {
		return err
	}
	dst := qr.Bounds().Add(image.Pt(op.X, op.Y))
	if !dst.In(img.Bounds()) {
		return fmt.Errorf("%w: %v on %v", ErrQROverflow, dst, img.Bounds())
	}
	draw.Draw(img, dst, qr, image.Point{}, draw.Src)
	return nil
}

// EncodePNG writes img as a PNG. Two-color paletted images are stored
// with a bit depth of 1.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
