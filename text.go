package stagelayout

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fontData is the bundled UI font. It covers the kana and kanji used by the
// registry icons and button labels.
var fontData = fonts.MPlus1pRegular_ttf

var (
	fontSourceOnce sync.Once
	fontSource     *text.GoTextFaceSource
	fontSourceErr  error
)

// loadFontSource parses the bundled font once.
func loadFontSource() (*text.GoTextFaceSource, error) {
	fontSourceOnce.Do(func() {
		fontSource, fontSourceErr = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if fontSourceErr != nil {
			fontSourceErr = fmt.Errorf("parse font: %w", fontSourceErr)
		}
	})
	return fontSource, fontSourceErr
}

// fontCache hands out text/v2 faces keyed by whole-pixel size.
type fontCache struct {
	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace
}

func newFontCache() (*fontCache, error) {
	src, err := loadFontSource()
	if err != nil {
		return nil, err
	}
	return &fontCache{source: src, faces: make(map[int]*text.GoTextFace)}, nil
}

func (c *fontCache) face(size float64) *text.GoTextFace {
	px := max(1, int(math.Round(size)))
	if f, ok := c.faces[px]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: float64(px)}
	c.faces[px] = f
	return f
}

// drawText draws s with the given alignment relative to (x, y). A nil cache
// draws nothing, so a missing font never stops the editor from running.
func (c *fontCache) drawText(dst *ebiten.Image, s string, size, x, y float64, clr color.Color, h, v text.Align) {
	if c == nil || s == "" {
		return
	}
	face := c.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = h
	op.SecondaryAlign = v
	op.LineSpacing = face.Metrics().HAscent + face.Metrics().HDescent
	text.Draw(dst, s, face, op)
}

// measure returns the advance width of s at size.
func (c *fontCache) measure(s string, size float64) float64 {
	if c == nil {
		return 0
	}
	w, _ := text.Measure(s, c.face(size), 0)
	return w
}
