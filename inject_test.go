package stagelayout

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClick(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)

	e.InjectClick(e.StageToScreen(center(a)))
	if len(e.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(e.injectQueue))
	}

	// Frame 1: press
	e.processInput()
	if len(e.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(e.injectQueue))
	}
	if len(e.Selected()) != 0 {
		t.Error("selection should not change on the press frame")
	}

	// Frame 2: release → click
	e.processInput()
	if len(e.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(e.injectQueue))
	}
	if !selected(e, a) {
		t.Errorf("Selected = %v, want [a]", e.Selected())
	}
}

func TestInjectClickWithShift(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	b := addAt(t, e, "chair", 200, 100)
	e.Select(a.ID)

	x, y := e.StageToScreen(center(b))
	e.InjectClickWith(x, y, ModShift)
	e.processInput()
	e.processInput()
	if !selected(e, a, b) {
		t.Errorf("Selected = %v, want [a b]", e.Selected())
	}
}

func TestInjectDrag(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)

	// frame 0: press at the token center
	// frames 1-3: interpolated moves
	// frame 4: release 30px right, 20px down
	fx, fy := e.StageToScreen(120, 120)
	e.InjectDrag(fx, fy, fx+30, fy+20, 5)
	if len(e.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(e.injectQueue))
	}
	for i := 0; i < 5; i++ {
		e.processInput()
	}
	if a.X != 130 || a.Y != 120 {
		t.Errorf("a = (%v, %v), want (130, 120)", a.X, a.Y)
	}
	if e.injectPending() {
		t.Error("queue should be drained")
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)

	fx, fy := e.StageToScreen(120, 120)
	e.InjectDrag(fx, fy, fx+3, fy+2, 0)
	if len(e.injectQueue) != 2 {
		t.Fatalf("expected press and release only, got %d events", len(e.injectQueue))
	}
	e.processInput()
	e.processInput()
	if a.X != 103 || a.Y != 102 {
		t.Errorf("a = (%v, %v), want (103, 102)", a.X, a.Y)
	}
}

func TestInjectKeyOnePerFrame(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	e.Select(a.ID)

	e.InjectKey(ebiten.KeyC, ModCtrl)
	e.InjectKey(ebiten.KeyV, ModCtrl)
	e.processInput()
	if e.Canvas().Len() != 1 {
		t.Fatal("paste ran in the same frame as copy")
	}
	e.processInput()
	if e.Canvas().Len() != 2 {
		t.Errorf("Len = %d after copy and paste", e.Canvas().Len())
	}
}

func TestInjectTextIntoPrompt(t *testing.T) {
	e := NewEditor(Options{Logger: quietLogger()})
	a := addAt(t, e, "chair", 100, 100)
	e.Rename(a.ID)
	if !e.dialogOpen() {
		t.Fatal("rename should open the prompt")
	}

	e.InjectKey(ebiten.KeyBackspace, 0) // drop the placeholder space
	e.processInput()
	e.InjectText("Vn2")
	e.processInput()
	e.InjectKey(ebiten.KeyEnter, 0)
	e.processInput()

	if e.dialogOpen() {
		t.Fatal("Enter should close the prompt")
	}
	if a.Label != "Vn2" || !a.LabelVisible {
		t.Errorf("label = %q visible %v", a.Label, a.LabelVisible)
	}
	if e.Canvas().Len() != 1 {
		t.Error("Backspace in the prompt must not delete tokens")
	}
}
