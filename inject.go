package stagelayout

import "github.com/hajimehoshi/ebiten/v2"

// syntheticPointerEvent is a single injected pointer event in screen
// coordinates. It runs through the same state machine as the real mouse.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	mods             KeyModifiers
}

// syntheticKey is a single injected key press.
type syntheticKey struct {
	key  ebiten.Key
	mods KeyModifiers
}

func (e *Editor) injectPointer(x, y float64, pressed bool, mods KeyModifiers) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
		mods:    mods,
	})
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next frame's input pass.
func (e *Editor) InjectPress(x, y float64) {
	e.injectPointer(x, y, true, 0)
}

// InjectMove queues a move with the button held. Use it between InjectPress
// and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(x, y float64) {
	e.injectPointer(x, y, true, 0)
}

// InjectRelease queues a release at the given screen coordinates.
func (e *Editor) InjectRelease(x, y float64) {
	e.injectPointer(x, y, false, 0)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (e *Editor) InjectClick(x, y float64) {
	e.InjectClickWith(x, y, 0)
}

// InjectClickWith is InjectClick with modifier keys held for both events.
func (e *Editor) InjectClickWith(x, y float64, mods KeyModifiers) {
	e.injectPointer(x, y, true, mods)
	e.injectPointer(x, y, false, mods)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). Minimum frames is 2.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		e.InjectMove(x, y)
	}
	e.InjectRelease(toX, toY)
}

// InjectKey queues a key press with the given modifiers. One queued key is
// handled per frame.
func (e *Editor) InjectKey(key ebiten.Key, mods KeyModifiers) {
	e.keyQueue = append(e.keyQueue, syntheticKey{key: key, mods: mods})
}

// InjectText queues typed characters. They are delivered together on the
// next frame, to the open prompt if there is one.
func (e *Editor) InjectText(s string) {
	e.textQueue = append(e.textQueue, []rune(s)...)
}

// injectPending reports whether injected input is still queued.
func (e *Editor) injectPending() bool {
	return len(e.injectQueue) > 0 || len(e.keyQueue) > 0 || len(e.textQueue) > 0
}

// processInjectedInput pops one pointer event and feeds it through
// processPointer as pointer 0. Returns true if an event was consumed, in which
// case the real mouse is skipped this frame.
func (e *Editor) processInjectedInput(mods KeyModifiers) bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	e.processPointer(0, evt.screenX, evt.screenY, evt.pressed, evt.button, evt.mods|mods)
	return true
}
