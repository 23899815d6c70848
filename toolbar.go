package stagelayout

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Token sizes offered by the toolbar.
var tokenSizes = []float64{30, 40, 50, 60}

// swatches are the picker colors offered by the toolbar: the registry fills
// plus white.
var swatches = []string{"#333333", "#ffadad", "#ffd6a5", "#fdffb6", "#caffbf", "#ffc6ff", "#dddddd", "#ffffff"}

// control is one toolbar button.
type control struct {
	label   string
	rect    Rect
	fill    string                 // swatch color; empty for regular buttons
	caption func(e *Editor) string // dynamic label, overrides label
	active  func(e *Editor) bool   // drawn pressed when true
	action  func(e *Editor)
}

func (c *control) text(e *Editor) string {
	if c.caption != nil {
		return c.caption(e)
	}
	return c.label
}

// toolbar is the fixed three-row control strip above the stage: one button
// per registry kind, then size, snap, hall and color controls, then the
// editing commands.
type toolbar struct {
	controls []*control
	width    float64
}

const (
	kindButtonW  = 104.0
	sizeButtonW  = 44.0
	swatchW      = 26.0
	commandW     = 92.0
	controlGap   = 6.0
	toolbarFont  = 14.0
	swatchMargin = 12.0
)

// rowLayout places controls left to right on one toolbar row.
type rowLayout struct {
	x, y float64
}

func newRow(i int) *rowLayout {
	return &rowLayout{
		x: screenMargin,
		y: toolbarTop + float64(i)*(toolbarRowH+toolbarRowGap),
	}
}

func (r *rowLayout) next(w float64) Rect {
	rect := Rect{X: r.x, Y: r.y, Width: w, Height: toolbarRowH}
	r.x += w + controlGap
	return rect
}

func (r *rowLayout) skip(w float64) {
	r.x += w
}

func newToolbar() *toolbar {
	tb := &toolbar{}
	add := func(c *control) {
		tb.controls = append(tb.controls, c)
		tb.width = max(tb.width, c.rect.X+c.rect.Width-screenMargin)
	}

	row := newRow(0)
	for _, k := range kinds {
		add(&control{
			label: k.Icon + " " + k.ButtonLabel,
			rect:  row.next(kindButtonW),
			action: func(e *Editor) {
				if _, err := e.AddToken(k.Key); err != nil {
					e.log.Error("add token", "kind", k.Key, "err", err)
				}
			},
		})
	}

	row = newRow(1)
	for _, size := range tokenSizes {
		add(&control{
			label:  strconv.FormatFloat(size, 'f', -1, 64),
			rect:   row.next(sizeButtonW),
			active: func(e *Editor) bool { return e.tokenSize == size },
			action: func(e *Editor) { _ = e.SetTokenSize(size) },
		})
	}
	row.skip(swatchMargin)
	add(&control{
		label:  "スナップ",
		rect:   row.next(commandW),
		active: func(e *Editor) bool { return e.snap },
		action: func(e *Editor) { e.SetSnap(!e.snap) },
	})
	add(&control{
		label:   "会場",
		rect:    row.next(160),
		caption: func(e *Editor) string { return "会場: " + LookupHall(e.hall).Label },
		action:  func(e *Editor) { e.SetHall(nextHall(e.hall)) },
	})
	row.skip(swatchMargin)
	for _, sw := range swatches {
		add(&control{
			label:  sw,
			fill:   sw,
			rect:   row.next(swatchW),
			active: func(e *Editor) bool { return e.picker == sw },
			action: func(e *Editor) { _ = e.SetPickerColor(sw) },
		})
	}

	row = newRow(2)
	for _, cmd := range []struct {
		label  string
		action func(e *Editor)
	}{
		{"色を変更", (*Editor).ApplyPickerColor},
		{"削除", (*Editor).DeleteSelected},
		{"全消去", (*Editor).ClearAll},
		{"保存", (*Editor).saveFromUI},
		{"読込", (*Editor).loadFromUI},
		{"画像保存", (*Editor).Export},
	} {
		add(&control{label: cmd.label, rect: row.next(commandW), action: cmd.action})
	}
	return tb
}

// hit returns the control at the screen point, or nil.
func (tb *toolbar) hit(sx, sy float64) *control {
	for _, c := range tb.controls {
		if c.rect.Contains(sx, sy) {
			return c
		}
	}
	return nil
}

// find returns the first control with the given label, or nil.
func (tb *toolbar) find(label string) *control {
	for _, c := range tb.controls {
		if c.label == label {
			return c
		}
	}
	return nil
}

var (
	controlFill   = color.NRGBA{0xff, 0xff, 0xff, 255}
	controlActive = color.NRGBA{0xcc, 0xe5, 0xff, 255}
	controlEdge   = color.NRGBA{0x99, 0x99, 0x99, 255}
	controlInk    = color.NRGBA{0x22, 0x22, 0x22, 255}
)

func (tb *toolbar) draw(dst *ebiten.Image, e *Editor) {
	for _, c := range tb.controls {
		active := c.active != nil && c.active(e)
		if c.fill != "" {
			fillRect(dst, c.rect, colorOr(c.fill, controlFill))
			edge, w := controlEdge, 1.0
			if active {
				edge, w = selectionColor, 3
			}
			strokeRect(dst, c.rect, w, edge)
			continue
		}

		bg := controlFill
		if active {
			bg = controlActive
		}
		fillRect(dst, c.rect, bg)
		strokeRect(dst, c.rect, 1, controlEdge)

		label := c.text(e)
		size := toolbarFont
		if w := e.fonts.measure(label, size); w > c.rect.Width-8 {
			size *= (c.rect.Width - 8) / w
		}
		e.fonts.drawText(dst, label, size, c.rect.X+c.rect.Width/2, c.rect.Y+c.rect.Height/2, controlInk, text.AlignCenter, text.AlignCenter)
	}
}
