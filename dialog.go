package stagelayout

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Dialogs asks the user to confirm destructive actions and to enter labels.
// Both calls may return before the user answers; done runs exactly once with
// the answer. Declined or canceled dialogs report ok=false.
type Dialogs interface {
	Confirm(message string, done func(ok bool))
	Prompt(message, initial string, done func(value string, ok bool))
}

// Dialog layout.
const (
	dialogWidth   = 420.0
	dialogPadding = 16.0
	dialogButtonW = 96.0
	dialogButtonH = 32.0
	dialogFont    = 16.0
)

type modalKind uint8

const (
	modalConfirm modalKind = iota
	modalPrompt
)

// modal is one pending question.
type modal struct {
	kind    modalKind
	message string
	value   []rune
	confirm func(bool)
	prompt  func(string, bool)
}

// windowDialogs shows dialogs as a modal overlay inside the editor window.
// While a dialog is open the editor routes all input to it. Requests made
// while one is open wait in order.
type windowDialogs struct {
	screenW, screenH float64
	queue            []*modal
	pressed          dialogButton // held since pointer-down
}

type dialogButton int

const (
	dialogNone dialogButton = iota
	dialogOK
	dialogCancel
)

func newWindowDialogs(screenW, screenH int) *windowDialogs {
	return &windowDialogs{screenW: float64(screenW), screenH: float64(screenH)}
}

func (d *windowDialogs) Confirm(message string, done func(bool)) {
	d.queue = append(d.queue, &modal{kind: modalConfirm, message: message, confirm: done})
}

func (d *windowDialogs) Prompt(message, initial string, done func(string, bool)) {
	d.queue = append(d.queue, &modal{
		kind:    modalPrompt,
		message: message,
		value:   []rune(initial),
		prompt:  done,
	})
}

// open reports whether a dialog is showing.
func (d *windowDialogs) open() bool {
	return len(d.queue) > 0
}

func (d *windowDialogs) current() *modal {
	if len(d.queue) == 0 {
		return nil
	}
	return d.queue[0]
}

// resolve answers the current dialog and shows the next one, if any.
func (d *windowDialogs) resolve(ok bool) {
	m := d.current()
	if m == nil {
		return
	}
	d.queue = d.queue[1:]
	d.pressed = dialogNone
	switch m.kind {
	case modalConfirm:
		if m.confirm != nil {
			m.confirm(ok)
		}
	case modalPrompt:
		if m.prompt != nil {
			m.prompt(string(m.value), ok)
		}
	}
}

// key handles one just-pressed key.
func (d *windowDialogs) key(k ebiten.Key) {
	m := d.current()
	if m == nil {
		return
	}
	switch k {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		d.resolve(true)
	case ebiten.KeyEscape:
		d.resolve(false)
	case ebiten.KeyBackspace:
		if m.kind == modalPrompt && len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	}
}

// input appends typed characters to a prompt.
func (d *windowDialogs) input(chars []rune) {
	m := d.current()
	if m == nil || m.kind != modalPrompt {
		return
	}
	for _, r := range chars {
		if r == utf8.RuneError || r < 0x20 {
			continue
		}
		m.value = append(m.value, r)
	}
}

// pointer feeds a primary pointer edge. A button fires when pressed and
// released over the same button.
func (d *windowDialogs) pointer(sx, sy float64, pressed bool) {
	hit := d.hitButton(sx, sy)
	if pressed {
		d.pressed = hit
		return
	}
	if hit != dialogNone && hit == d.pressed {
		d.resolve(hit == dialogOK)
		return
	}
	d.pressed = dialogNone
}

func (d *windowDialogs) box() Rect {
	h := 150.0
	if m := d.current(); m != nil && m.kind == modalPrompt {
		h = 190
	}
	return Rect{
		X:      (d.screenW - dialogWidth) / 2,
		Y:      (d.screenH - h) / 2,
		Width:  dialogWidth,
		Height: h,
	}
}

func (d *windowDialogs) buttonRects() (ok, cancel Rect) {
	b := d.box()
	y := b.Y + b.Height - dialogPadding - dialogButtonH
	cancel = Rect{X: b.X + b.Width - dialogPadding - dialogButtonW, Y: y, Width: dialogButtonW, Height: dialogButtonH}
	ok = Rect{X: cancel.X - 8 - dialogButtonW, Y: y, Width: dialogButtonW, Height: dialogButtonH}
	return ok, cancel
}

func (d *windowDialogs) hitButton(sx, sy float64) dialogButton {
	ok, cancel := d.buttonRects()
	switch {
	case ok.Contains(sx, sy):
		return dialogOK
	case cancel.Contains(sx, sy):
		return dialogCancel
	}
	return dialogNone
}

var (
	dialogShade = color.NRGBA{0, 0, 0, 96}
	dialogFill  = color.NRGBA{255, 255, 255, 255}
	dialogEdge  = color.NRGBA{0x33, 0x33, 0x33, 255}
	dialogKey   = color.NRGBA{0xee, 0xee, 0xee, 255}
	dialogInk   = color.NRGBA{0, 0, 0, 255}
)

func (d *windowDialogs) draw(dst *ebiten.Image, fc *fontCache) {
	m := d.current()
	if m == nil {
		return
	}
	vector.DrawFilledRect(dst, 0, 0, float32(d.screenW), float32(d.screenH), dialogShade, false)

	b := d.box()
	fillRect(dst, b, dialogFill)
	strokeRect(dst, b, 1, dialogEdge)
	fc.drawText(dst, m.message, dialogFont, b.X+dialogPadding, b.Y+dialogPadding, dialogInk, text.AlignStart, text.AlignStart)

	if m.kind == modalPrompt {
		field := Rect{X: b.X + dialogPadding, Y: b.Y + 56, Width: b.Width - 2*dialogPadding, Height: 36}
		fillRect(dst, field, dialogFill)
		strokeRect(dst, field, 1, dialogEdge)
		fc.drawText(dst, string(m.value)+"|", dialogFont, field.X+8, field.Y+field.Height/2, dialogInk, text.AlignStart, text.AlignCenter)
	}

	ok, cancel := d.buttonRects()
	for _, btn := range []struct {
		r     Rect
		label string
	}{{ok, "OK"}, {cancel, "キャンセル"}} {
		fillRect(dst, btn.r, dialogKey)
		strokeRect(dst, btn.r, 1, dialogEdge)
		fc.drawText(dst, btn.label, 14, btn.r.X+btn.r.Width/2, btn.r.Y+btn.r.Height/2, dialogInk, text.AlignCenter, text.AlignCenter)
	}
}
