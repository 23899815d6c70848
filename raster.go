package stagelayout

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

var (
	rasterFontOnce sync.Once
	rasterFont     *opentype.Font
	rasterFontErr  error
)

func loadRasterFont() (*opentype.Font, error) {
	rasterFontOnce.Do(func() {
		rasterFont, rasterFontErr = opentype.Parse(fontData)
		if rasterFontErr != nil {
			rasterFontErr = fmt.Errorf("parse font: %w", rasterFontErr)
		}
	})
	return rasterFont, rasterFontErr
}

// rasterizer draws layout documents without a GPU or a window.
type rasterizer struct {
	dc    *gg.Context
	font  *opentype.Font
	faces map[int]font.Face
}

// Rasterize renders doc onto a white w×h image the same way the editor
// exports its stage: hall background first, then tokens in order. It needs
// no window, so the CLI and tests can produce the PNG headlessly.
func Rasterize(doc Document, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: bad size %dx%d", w, h)
	}
	tokens, err := doc.Tokens()
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	f, err := loadRasterFont()
	if err != nil {
		return nil, err
	}

	r := &rasterizer{dc: gg.NewContext(w, h), font: f, faces: make(map[int]font.Face)}
	defer r.close()

	r.dc.SetColor(color.White)
	r.dc.Clear()

	hall := LookupHall(doc.Hall)
	r.dc.SetColor(hall.Background)
	r.dc.DrawRectangle(0, 0, float64(w), float64(h))
	r.dc.Fill()
	if hall.FrontDepth > 0 {
		r.dc.SetColor(hall.Front)
		r.dc.DrawRectangle(0, float64(h)-hall.FrontDepth, float64(w), hall.FrontDepth)
		r.dc.Fill()
	}

	for _, t := range tokens {
		if err := r.token(t); err != nil {
			return nil, err
		}
	}
	return r.dc.Image(), nil
}

func (r *rasterizer) token(t *Token) error {
	dc := r.dc
	b := parseBorder(t.Style.Border)

	shape := func(inset float64) {
		x, y := t.X+inset, t.Y+inset
		w, h := t.Width-2*inset, t.Height-2*inset
		switch {
		case t.Circle():
			dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
		case t.CornerRadius() > 0:
			dc.DrawRoundedRectangle(x, y, w, h, max(0, t.CornerRadius()-inset))
		default:
			dc.DrawRectangle(x, y, w, h)
		}
	}

	dc.SetColor(colorOr(t.Style.Fill, color.NRGBA{255, 255, 255, 255}))
	shape(0)
	dc.Fill()
	if b.width > 0 {
		dc.SetColor(colorOr(b.color, color.NRGBA{0, 0, 0, 255}))
		dc.SetLineWidth(b.width)
		shape(b.width / 2)
		dc.Stroke()
	}

	size := t.Style.FontSize
	if size <= 0 {
		size = t.Height / 2.5
	}
	dc.SetColor(colorOr(t.Style.TextColor, color.NRGBA{0, 0, 0, 255}))
	cx, cy := t.X+t.Width/2, t.Y+t.Height/2

	face, err := r.face(size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	if !t.LabelVisible {
		dc.DrawStringAnchored(t.Icon, cx, cy, 0.5, 0.5)
		return nil
	}
	labelSize := size * labelScale
	dc.DrawStringAnchored(t.Icon, cx, cy-labelSize/2, 0.5, 0.5)

	face, err = r.face(labelSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.DrawStringAnchored(t.Label, cx, cy+size/2, 0.5, 0.5)
	return nil
}

// face returns a cached face for the given pixel size.
func (r *rasterizer) face(size float64) (font.Face, error) {
	px := max(1, int(math.Round(size)))
	if f, ok := r.faces[px]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %dpx: %w", px, err)
	}
	r.faces[px] = f
	return f, nil
}

func (r *rasterizer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}
