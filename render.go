package stagelayout

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	windowBackground = color.NRGBA{0xf4, 0xf4, 0xf4, 255}
	stageEdge        = color.NRGBA{0x33, 0x33, 0x33, 255}
	selectionColor   = color.NRGBA{0x00, 0x7b, 0xff, 255}
	footerInk        = color.NRGBA{0x22, 0x22, 0x22, 255}
)

// labelScale is the label font size relative to the icon font size.
const labelScale = 0.6

// Draw renders the toolbar, the stage, the footer and any open dialog, then
// writes a pending export.
func (e *Editor) Draw(screen *ebiten.Image) {
	if e.fonts == nil && e.fontErr == nil {
		e.fonts, e.fontErr = newFontCache()
		if e.fontErr != nil {
			e.log.Error("load font", "err", e.fontErr)
		}
	}

	screen.Fill(windowBackground)
	e.toolbar.draw(screen, e)

	r := e.view.screenRect()
	stage := screen.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))).(*ebiten.Image)
	e.drawStage(stage, r.X, r.Y, true)
	strokeRect(screen, r, 2, stageEdge)

	y := e.view.footerY()
	e.fonts.drawText(screen, e.summary, 16, r.X, y, footerInk, text.AlignStart, text.AlignStart)
	if e.status.text != "" {
		ink := footerInk
		ink.A = uint8(255 * e.status.alpha)
		e.fonts.drawText(screen, e.status.text, 14, r.X, y+24, ink, text.AlignStart, text.AlignStart)
	}

	if e.modal != nil {
		e.modal.draw(screen, e.fonts)
	}

	e.flushExport()
}

// drawStage paints the hall background and every token with the stage origin
// at (ox, oy) in dst. Selection outlines are drawn when highlight is set.
func (e *Editor) drawStage(dst *ebiten.Image, ox, oy float64, highlight bool) {
	h := LookupHall(e.hall)
	area := Rect{X: ox, Y: oy, Width: e.view.width, Height: e.view.height}
	fillRect(dst, area, h.Background)
	if h.FrontDepth > 0 {
		fillRect(dst, Rect{X: ox, Y: oy + area.Height - h.FrontDepth, Width: area.Width, Height: h.FrontDepth}, h.Front)
	}

	for _, t := range e.canvas.Tokens() {
		drawToken(dst, e.fonts, t, ox, oy)
	}

	if !highlight {
		return
	}
	outline := selectionColor
	outline.A = uint8(255 * e.pulse.value)
	for _, t := range e.selectedTokens() {
		drawSelection(dst, t, ox, oy, outline)
	}
}

// drawToken paints one token: fill, border, icon and, when visible, the
// label under the icon.
func drawToken(dst *ebiten.Image, fc *fontCache, t *Token, ox, oy float64) {
	r := Rect{X: ox + t.X, Y: oy + t.Y, Width: t.Width, Height: t.Height}
	fill := colorOr(t.Style.Fill, color.NRGBA{255, 255, 255, 255})
	b := parseBorder(t.Style.Border)
	bc := colorOr(b.color, color.NRGBA{0, 0, 0, 255})

	if t.Circle() {
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		rad := min(r.Width, r.Height) / 2
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(rad), fill, true)
		if b.width > 0 {
			vector.StrokeCircle(dst, float32(cx), float32(cy), float32(rad-b.width/2), float32(b.width), bc, true)
		}
	} else {
		fillRoundedRect(dst, r, t.CornerRadius(), fill)
		if b.width > 0 {
			inset := Rect{X: r.X + b.width/2, Y: r.Y + b.width/2, Width: r.Width - b.width, Height: r.Height - b.width}
			strokeRect(dst, inset, b.width, bc)
		}
	}

	ink := colorOr(t.Style.TextColor, color.NRGBA{0, 0, 0, 255})
	size := t.Style.FontSize
	if size <= 0 {
		size = t.Height / 2.5
	}
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	if !t.LabelVisible {
		fc.drawText(dst, t.Icon, size, cx, cy, ink, text.AlignCenter, text.AlignCenter)
		return
	}
	labelSize := size * labelScale
	fc.drawText(dst, t.Icon, size, cx, cy-labelSize/2, ink, text.AlignCenter, text.AlignCenter)
	fc.drawText(dst, t.Label, labelSize, cx, cy+size/2, ink, text.AlignCenter, text.AlignCenter)
}

// drawSelection outlines a selected token just outside its edge.
func drawSelection(dst *ebiten.Image, t *Token, ox, oy float64, clr color.Color) {
	const gap, width = 3.0, 2.0
	if t.Circle() {
		cx, cy := ox+t.X+t.Width/2, oy+t.Y+t.Height/2
		rad := min(t.Width, t.Height)/2 + gap
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(rad), width, clr, true)
		return
	}
	strokeRect(dst, Rect{X: ox + t.X - gap, Y: oy + t.Y - gap, Width: t.Width + 2*gap, Height: t.Height + 2*gap}, width, clr)
}

func fillRect(dst *ebiten.Image, r Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(dst *ebiten.Image, r Rect, width float64, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), clr, false)
}

// fillRoundedRect fills r with corners of the given radius, built from two
// overlapping rectangles and four corner circles.
func fillRoundedRect(dst *ebiten.Image, r Rect, radius float64, clr color.Color) {
	radius = min(radius, r.Width/2, r.Height/2)
	if radius <= 0 {
		fillRect(dst, r, clr)
		return
	}
	fillRect(dst, Rect{X: r.X + radius, Y: r.Y, Width: r.Width - 2*radius, Height: r.Height}, clr)
	fillRect(dst, Rect{X: r.X, Y: r.Y + radius, Width: r.Width, Height: r.Height - 2*radius}, clr)
	for _, c := range [4][2]float64{
		{r.X + radius, r.Y + radius},
		{r.X + r.Width - radius, r.Y + radius},
		{r.X + radius, r.Y + r.Height - radius},
		{r.X + r.Width - radius, r.Y + r.Height - radius},
	} {
		vector.DrawFilledCircle(dst, float32(c[0]), float32(c[1]), float32(radius), clr, true)
	}
}
