package stagelayout

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers       = 10 // pointer 0 = mouse, 1-9 = touch
	doubleClickFrames = 18 // max frames between the clicks of a double-click
)

// --- Hit shapes ---

// HitRect is an axis-aligned rectangular hit area in stage coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitEllipse is an elliptical hit area in stage coordinates. Round tokens
// use it; with equal radii it is a circle.
type HitEllipse struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e HitEllipse) Contains(x, y float64) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx := (x - e.CenterX) / e.RadiusX
	dy := (y - e.CenterY) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// hitShape returns the hit area of t.
func hitShape(t *Token) interface{ Contains(x, y float64) bool } {
	if t.Circle() {
		return HitEllipse{
			CenterX: t.X + t.Width/2,
			CenterY: t.Y + t.Height/2,
			RadiusX: t.Width / 2,
			RadiusY: t.Height / 2,
		}
	}
	return HitRect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64 // screen coordinates at press
	startY   float64
	lastX    float64
	lastY    float64
	hitToken string   // token under the press, if any
	control  *control // toolbar control under the press, if any
	onStage  bool     // press landed on empty stage
	dragging bool     // left the press point while driving a drag
	ignored  bool     // press the editor does not handle
	modal    bool     // press was routed to an open dialog
	button   MouseButton
}

// clickRecord remembers the last plain click for double-click detection.
type clickRecord struct {
	id    string
	frame int
}

// CapturePointer routes all events for pointerID to the token with the given
// ID until the pointer is released, even when it leaves the token.
func (e *Editor) CapturePointer(pointerID int, tokenID string) {
	if pointerID >= 0 && pointerID < maxPointers {
		e.captured[pointerID] = tokenID
	}
}

// ReleasePointer stops routing events for pointerID to a captured token.
func (e *Editor) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		e.captured[pointerID] = ""
	}
}

// --- Hit testing ---

// hitTest returns the topmost token at the screen point, or nil. Tokens are
// only hit where they are visible, inside the stage.
func (e *Editor) hitTest(sx, sy float64) *Token {
	if !e.view.containsScreen(sx, sy) {
		return nil
	}
	x, y := e.view.screenToStage(sx, sy)
	tokens := e.canvas.Tokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		if hitShape(tokens[i]).Contains(x, y) {
			return tokens[i]
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Editor.Update to handle pointer and keyboard
// input for one frame.
func (e *Editor) processInput() {
	e.frame++
	mods := readModifiers()

	if !e.processInjectedInput(mods) {
		e.processMousePointer(mods)
	}
	e.processTouchPointers(mods)
	e.processKeys(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (e *Editor) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	e.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9). Every touch acts
// as a primary button.
func (e *Editor) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(e.prevTouchIDs[:0])
	e.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := e.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		e.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if e.touchUsed[i] && !activeSlots[i] {
			ps := &e.pointers[i]
			if ps.down {
				e.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			e.touchUsed[i] = false
			e.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (e *Editor) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if e.touchUsed[i] && e.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !e.touchUsed[i] {
			e.touchUsed[i] = true
			e.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
// Coordinates are screen coordinates.
func (e *Editor) processPointer(pointerID int, sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &e.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		*ps = pointerState{
			down:   true,
			startX: sx, startY: sy,
			lastX: sx, lastY: sy,
			button: button,
		}
		e.pointerDown(pointerID, ps, sx, sy, mods)
	case !pressed && ps.down:
		e.pointerUp(pointerID, ps, sx, sy, mods)
		e.ReleasePointer(pointerID)
		*ps = pointerState{lastX: sx, lastY: sy}
	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			e.pointerMove(pointerID, ps, sx, sy)
		}
		ps.lastX = sx
		ps.lastY = sy
	default:
		ps.lastX = sx
		ps.lastY = sy
	}
}

func (e *Editor) pointerDown(pointerID int, ps *pointerState, sx, sy float64, mods KeyModifiers) {
	if e.dialogOpen() {
		ps.modal = true
		e.modal.pointer(sx, sy, true)
		return
	}
	if ps.button != MouseButtonLeft {
		ps.ignored = true
		return
	}
	if c := e.toolbar.hit(sx, sy); c != nil {
		ps.control = c
		return
	}

	t := e.hitTest(sx, sy)
	if t == nil {
		ps.onStage = e.view.containsScreen(sx, sy)
		return
	}
	if e.drag != nil {
		// One drag at a time; a second pointer on a token does nothing.
		ps.ignored = true
		return
	}
	ps.hitToken = t.ID
	if mods&ModShift != 0 {
		// Shift-clicks toggle membership on release and never drag.
		return
	}
	if !e.selection.Contains(t.ID) {
		e.selection.Only(t.ID)
	}
	x, y := e.view.screenToStage(sx, sy)
	e.drag = newDragSession(pointerID, t, x, y, e.selectedTokens())
	e.CapturePointer(pointerID, t.ID)
}

func (e *Editor) pointerMove(pointerID int, ps *pointerState, sx, sy float64) {
	if ps.modal || ps.ignored {
		return
	}
	if e.drag == nil || e.drag.pointerID != pointerID {
		return
	}
	if sx != ps.startX || sy != ps.startY {
		ps.dragging = true
	}
	x, y := e.view.screenToStage(sx, sy)
	e.drag.move(x, y, e.snap)
}

func (e *Editor) pointerUp(pointerID int, ps *pointerState, sx, sy float64, mods KeyModifiers) {
	if ps.modal {
		if e.dialogOpen() {
			e.modal.pointer(sx, sy, false)
		}
		return
	}
	if ps.ignored {
		return
	}

	if e.drag != nil && e.drag.pointerID == pointerID {
		if sx != ps.startX || sy != ps.startY {
			ps.dragging = true
		}
		if ps.dragging {
			x, y := e.view.screenToStage(sx, sy)
			e.drag.move(x, y, e.snap)
		}
		e.drag = nil
	}
	dragged := ps.dragging

	switch {
	case dragged:
		e.log.Debug("drag committed", "tokens", e.selection.Len())
	case ps.control != nil:
		if e.toolbar.hit(sx, sy) == ps.control {
			ps.control.action(e)
		}
	case ps.hitToken != "":
		target := e.captured[pointerID]
		if target == "" {
			if t := e.hitTest(sx, sy); t != nil {
				target = t.ID
			}
		}
		if target == ps.hitToken {
			if t := e.canvas.Token(target); t != nil {
				e.clickToken(t, mods)
			}
		}
	case ps.onStage:
		if e.view.containsScreen(sx, sy) && e.hitTest(sx, sy) == nil {
			e.selection.Clear()
		}
	}
	e.refresh()
}

// clickToken applies click selection rules to t.
func (e *Editor) clickToken(t *Token, mods KeyModifiers) {
	if mods&ModShift != 0 {
		e.selection.Toggle(t.ID)
		e.lastClick = clickRecord{}
		return
	}
	e.selection.Only(t.ID)
	e.picker = HexColor(t.Style.Fill)

	if e.lastClick.id == t.ID && e.frame-e.lastClick.frame <= doubleClickFrames {
		e.lastClick = clickRecord{}
		e.Rename(t.ID)
		return
	}
	e.lastClick = clickRecord{id: t.ID, frame: e.frame}
}

// --- Keyboard ---

// processKeys handles keys pressed this frame, real ones first, then at most
// one injected key.
func (e *Editor) processKeys(mods KeyModifiers) {
	e.keyBuf = inpututil.AppendJustPressedKeys(e.keyBuf[:0])
	for _, k := range e.keyBuf {
		e.handleKey(k, mods)
	}
	if len(e.keyQueue) > 0 {
		sk := e.keyQueue[0]
		e.keyQueue = e.keyQueue[1:]
		e.handleKey(sk.key, sk.mods|mods)
	}

	e.charBuf = ebiten.AppendInputChars(e.charBuf[:0])
	e.charBuf = append(e.charBuf, e.textQueue...)
	e.textQueue = e.textQueue[:0]
	if len(e.charBuf) > 0 && e.dialogOpen() {
		e.modal.input(e.charBuf)
	}
}

// handleKey dispatches one key press. An open dialog takes every key.
func (e *Editor) handleKey(k ebiten.Key, mods KeyModifiers) {
	if e.dialogOpen() {
		e.modal.key(k)
		return
	}
	switch {
	case k == ebiten.KeyC && mods.shortcut():
		e.Copy()
	case k == ebiten.KeyV && mods.shortcut():
		e.Paste()
	case k == ebiten.KeyS && mods.shortcut():
		e.saveFromUI()
	case k == ebiten.KeyDelete || k == ebiten.KeyBackspace:
		e.DeleteSelected()
	case k == ebiten.KeyF2 || k == ebiten.KeyEnter:
		if e.selection.Len() == 1 {
			e.Rename(e.selection.IDs()[0])
		}
	case k == ebiten.KeyEscape:
		e.selection.Clear()
	}
}
