package stagelayout

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Helpers ---

// pointerAt feeds one pointer sample at stage coordinates. Every sample is
// one frame.
func pointerAt(e *Editor, id int, x, y float64, pressed bool, mods KeyModifiers) {
	e.frame++
	sx, sy := e.StageToScreen(x, y)
	e.processPointer(id, sx, sy, pressed, MouseButtonLeft, mods)
}

func clickAt(e *Editor, x, y float64, mods KeyModifiers) {
	pointerAt(e, 0, x, y, true, mods)
	pointerAt(e, 0, x, y, false, mods)
}

func dragFrom(e *Editor, fromX, fromY, toX, toY float64) {
	pointerAt(e, 0, fromX, fromY, true, 0)
	pointerAt(e, 0, (fromX+toX)/2, (fromY+toY)/2, true, 0)
	pointerAt(e, 0, toX, toY, true, 0)
	pointerAt(e, 0, toX, toY, false, 0)
}

func center(t *Token) (float64, float64) {
	return t.X + t.Width/2, t.Y + t.Height/2
}

func selected(e *Editor, want ...*Token) bool {
	got := e.Selected()
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i].ID {
			return false
		}
	}
	return true
}

// --- Hit shapes ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 40, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{50, 60, true},
		{30, 40, true},
		{9, 40, false},
		{30, 61, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitEllipseContains(t *testing.T) {
	e := HitEllipse{CenterX: 20, CenterY: 20, RadiusX: 20, RadiusY: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{20, 20, true},
		{0, 20, true},
		{20, 40, true},
		{1, 1, false}, // bounding-box corner
		{41, 20, false},
	}
	for _, tt := range tests {
		if got := e.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if (HitEllipse{RadiusX: 0, RadiusY: 5}).Contains(0, 0) {
		t.Error("degenerate ellipse should contain nothing")
	}
}

func TestHitTestTopmost(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	b := addAt(t, e, "stand", 120, 120)

	sx, sy := e.StageToScreen(130, 130)
	if got := e.hitTest(sx, sy); got != b {
		t.Errorf("overlap hit = %v, want the later token", got)
	}
	sx, sy = e.StageToScreen(105, 105)
	if got := e.hitTest(sx, sy); got != a {
		t.Errorf("hit = %v, want a", got)
	}
}

func TestHitTestRoundTokenCorner(t *testing.T) {
	e, _ := newTestEditor(t)
	addAt(t, e, "chair", 100, 100)
	sx, sy := e.StageToScreen(101, 101)
	if got := e.hitTest(sx, sy); got != nil {
		t.Error("bounding-box corner of a round token should miss")
	}
}

func TestHitTestClippedToStage(t *testing.T) {
	e, _ := newTestEditor(t)
	addAt(t, e, "stand", -20, 100)
	sx, sy := e.StageToScreen(-10, 110)
	if got := e.hitTest(sx, sy); got != nil {
		t.Error("the part of a token outside the stage should not be hit")
	}
	sx, sy = e.StageToScreen(10, 110)
	if got := e.hitTest(sx, sy); got == nil {
		t.Error("the visible part should be hit")
	}
}

// --- Click selection ---

func TestClickSelectsOnly(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	b := addAt(t, e, "harp", 200, 100)
	b.Style.Fill = "rgb(202, 255, 191)"

	clickAt(e, 120, 120, 0)
	if !selected(e, a) {
		t.Fatalf("Selected = %v, want [a]", e.Selected())
	}
	if e.PickerColor() != "#ffadad" {
		t.Errorf("picker = %q, want the clicked fill", e.PickerColor())
	}

	clickAt(e, 220, 120, 0)
	if !selected(e, b) {
		t.Errorf("Selected = %v, want [b]", e.Selected())
	}
	if e.PickerColor() != "#caffbf" {
		t.Errorf("picker = %q, want #caffbf", e.PickerColor())
	}
}

func TestShiftClickToggles(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	b := addAt(t, e, "chair", 200, 100)

	clickAt(e, 120, 120, 0)
	clickAt(e, 220, 120, ModShift)
	if !selected(e, a, b) {
		t.Fatalf("Selected = %v, want [a b]", e.Selected())
	}
	clickAt(e, 220, 120, ModShift)
	if !selected(e, a) {
		t.Fatalf("Selected = %v, want [a]", e.Selected())
	}
	clickAt(e, 120, 120, ModShift)
	if !selected(e) {
		t.Errorf("Selected = %v, want []", e.Selected())
	}
}

func TestShiftPressNeverDrags(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	b := addAt(t, e, "stand", 200, 100)
	clickAt(e, 120, 120, 0)

	pointerAt(e, 0, 220, 120, true, ModShift)
	pointerAt(e, 0, 260, 160, true, ModShift)
	pointerAt(e, 0, 220, 120, true, ModShift)
	pointerAt(e, 0, 220, 120, false, ModShift)

	if a.X != 100 || b.X != 200 || b.Y != 100 {
		t.Errorf("shift press moved tokens: a.X=%v b=(%v,%v)", a.X, b.X, b.Y)
	}
	if !selected(e, a, b) {
		t.Errorf("Selected = %v, want [a b]", e.Selected())
	}
}

func TestEmptyStageClickClears(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	clickAt(e, 120, 120, 0)

	// Below the stage is not the stage.
	clickAt(e, 400, DefaultStageHeight+30, 0)
	if !selected(e, a) {
		t.Fatalf("click outside the stage changed the selection: %v", e.Selected())
	}

	clickAt(e, 700, 400, 0)
	if !selected(e) {
		t.Errorf("Selected = %v, want []", e.Selected())
	}
}

func TestNonPrimaryButtonsIgnored(t *testing.T) {
	e, _ := newTestEditor(t)
	addAt(t, e, "chair", 100, 100)
	sx, sy := e.StageToScreen(120, 120)
	e.processPointer(0, sx, sy, true, MouseButtonRight, 0)
	e.processPointer(0, sx, sy, false, MouseButtonRight, 0)
	if len(e.Selected()) != 0 {
		t.Error("right click should not select")
	}
}

func TestDoubleClickRenames(t *testing.T) {
	e, d := newTestEditor(t)
	d.value = "Vc"
	a := addAt(t, e, "cello", 100, 100)

	clickAt(e, 120, 120, 0)
	if len(d.prompts) != 0 {
		t.Fatal("a single click should not prompt")
	}
	clickAt(e, 120, 120, 0)
	if len(d.prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(d.prompts))
	}
	if a.Label != "Vc" || !a.LabelVisible {
		t.Errorf("label = %q visible %v", a.Label, a.LabelVisible)
	}

	// A third click starts a new pair.
	clickAt(e, 120, 120, 0)
	if len(d.prompts) != 1 {
		t.Errorf("third click prompted again")
	}
}

func TestSlowClicksAreNotDoubleClick(t *testing.T) {
	e, d := newTestEditor(t)
	addAt(t, e, "cello", 100, 100)

	clickAt(e, 120, 120, 0)
	e.frame += doubleClickFrames + 1
	clickAt(e, 120, 120, 0)
	if len(d.prompts) != 0 {
		t.Error("clicks further apart than the double-click window prompted")
	}
}

// --- Dragging ---

func TestDragMovesWholeSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	b := addAt(t, e, "stand", 200, 150)
	c := addAt(t, e, "stand", 300, 300)

	clickAt(e, 120, 120, 0)
	clickAt(e, 220, 170, ModShift)
	dragFrom(e, 120, 120, 150, 140)

	if a.X != 130 || a.Y != 120 {
		t.Errorf("a = (%v, %v), want (130, 120)", a.X, a.Y)
	}
	if b.X != 230 || b.Y != 170 {
		t.Errorf("b = (%v, %v), want (230, 170)", b.X, b.Y)
	}
	if c.X != 300 || c.Y != 300 {
		t.Errorf("unselected c moved to (%v, %v)", c.X, c.Y)
	}
	// A drag is not a click, so the group stays selected.
	if !selected(e, a, b) {
		t.Errorf("Selected = %v, want [a b]", e.Selected())
	}
	if e.drag != nil {
		t.Error("drag session should end on release")
	}
}

func TestDragUnselectedTokenCollapsesSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	c := addAt(t, e, "stand", 300, 300)

	clickAt(e, 120, 120, 0)
	dragFrom(e, 320, 320, 310, 330)

	if !selected(e, c) {
		t.Errorf("Selected = %v, want [c]", e.Selected())
	}
	if a.X != 100 || a.Y != 100 {
		t.Errorf("a moved to (%v, %v)", a.X, a.Y)
	}
	if c.X != 290 || c.Y != 310 {
		t.Errorf("c = (%v, %v), want (290, 310)", c.X, c.Y)
	}
}

func TestDragSnapsToGrid(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetSnap(true)
	a := addAt(t, e, "stand", 12, 13)
	b := addAt(t, e, "stand", 101, 207)
	clickAt(e, 20, 20, 0)
	clickAt(e, 110, 215, ModShift)

	dragFrom(e, 20, 20, 27, 23)
	for _, tok := range []*Token{a, b} {
		if tok.X != Snap(tok.X) || tok.Y != Snap(tok.Y) {
			t.Errorf("token at (%v, %v) is off the grid", tok.X, tok.Y)
		}
	}
	if a.X != 20 || a.Y != 15 {
		t.Errorf("a = (%v, %v), want (20, 15)", a.X, a.Y)
	}
	if b.X != 110 || b.Y != 210 {
		t.Errorf("b = (%v, %v), want (110, 210)", b.X, b.Y)
	}
}

func TestShortDragMovesSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	b := addAt(t, e, "stand", 200, 200)
	e.Select(a.ID, b.ID)

	pointerAt(e, 0, 120, 120, true, 0)
	pointerAt(e, 0, 123, 122, true, 0)
	if a.X != 103 || a.Y != 102 {
		t.Errorf("a = (%v, %v) during the drag, want (103, 102)", a.X, a.Y)
	}
	pointerAt(e, 0, 123, 122, false, 0)

	if a.X != 103 || a.Y != 102 {
		t.Errorf("a = (%v, %v), want (103, 102)", a.X, a.Y)
	}
	if b.X != 203 || b.Y != 202 {
		t.Errorf("b = (%v, %v), want (203, 202)", b.X, b.Y)
	}
	if !selected(e, a, b) {
		t.Errorf("a drag should keep the selection: Selected = %v", e.Selected())
	}
}

func TestDragWithoutMoveSample(t *testing.T) {
	tests := []struct {
		name         string
		snap         bool
		toX, toY     float64
		wantX, wantY float64
	}{
		{"free", false, 170, 150, 150, 130},
		{"snapped", true, 172, 151, 150, 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			e.SetSnap(tt.snap)
			a := addAt(t, e, "stand", 100, 100)
			b := addAt(t, e, "stand", 300, 300)
			e.Select(a.ID, b.ID)

			pointerAt(e, 0, 120, 120, true, 0)
			pointerAt(e, 0, tt.toX, tt.toY, false, 0)

			if a.X != tt.wantX || a.Y != tt.wantY {
				t.Errorf("a = (%v, %v), want (%v, %v)", a.X, a.Y, tt.wantX, tt.wantY)
			}
			if b.X != tt.wantX+200 || b.Y != tt.wantY+200 {
				t.Errorf("b = (%v, %v), want (%v, %v)", b.X, b.Y, tt.wantX+200, tt.wantY+200)
			}
			if !selected(e, a, b) {
				t.Errorf("Selected = %v, want [a b]", e.Selected())
			}
		})
	}
}

func TestClickWithSnapLeavesPosition(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetSnap(true)
	a := addAt(t, e, "stand", 12, 13)

	clickAt(e, 20, 20, 0)
	if a.X != 12 || a.Y != 13 {
		t.Errorf("a click moved a to (%v, %v)", a.X, a.Y)
	}
	if !selected(e, a) {
		t.Errorf("Selected = %v, want [a]", e.Selected())
	}
}

func TestReturnToPressPointIsNotAClick(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	b := addAt(t, e, "stand", 200, 200)
	e.Select(a.ID, b.ID)

	pointerAt(e, 0, 120, 120, true, 0)
	pointerAt(e, 0, 140, 120, true, 0)
	pointerAt(e, 0, 120, 120, true, 0)
	pointerAt(e, 0, 120, 120, false, 0)

	if a.X != 100 || a.Y != 100 {
		t.Errorf("a = (%v, %v), want (100, 100)", a.X, a.Y)
	}
	if !selected(e, a, b) {
		t.Errorf("Selected = %v, want [a b]", e.Selected())
	}
}

func TestSecondPointerIgnoredDuringDrag(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)
	c := addAt(t, e, "stand", 300, 300)

	pointerAt(e, 0, 120, 120, true, 0)
	pointerAt(e, 0, 140, 120, true, 0)

	pointerAt(e, 1, 320, 320, true, 0)
	pointerAt(e, 1, 360, 360, true, 0)
	pointerAt(e, 1, 360, 360, false, 0)
	if c.X != 300 || c.Y != 300 {
		t.Errorf("second pointer moved c to (%v, %v)", c.X, c.Y)
	}

	pointerAt(e, 0, 150, 120, true, 0)
	pointerAt(e, 0, 150, 120, false, 0)
	if a.X != 130 || a.Y != 100 {
		t.Errorf("a = (%v, %v), want (130, 100)", a.X, a.Y)
	}
	if !selected(e, a) {
		t.Errorf("Selected = %v, want [a]", e.Selected())
	}
}

func TestPointerCaptureDuringDrag(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)

	pointerAt(e, 0, 120, 120, true, 0)
	if e.captured[0] != a.ID {
		t.Errorf("captured = %q, want a", e.captured[0])
	}
	pointerAt(e, 0, 120, 120, false, 0)
	if e.captured[0] != "" {
		t.Error("capture should be released with the pointer")
	}
}

func TestDeleteDuringDragEndsSession(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addAt(t, e, "stand", 100, 100)

	pointerAt(e, 0, 120, 120, true, 0)
	pointerAt(e, 0, 140, 120, true, 0)
	e.DeleteSelected()
	if e.drag != nil {
		t.Fatal("delete should end the drag session")
	}
	pointerAt(e, 0, 160, 120, true, 0)
	pointerAt(e, 0, 160, 120, false, 0)
	if e.Canvas().Has(a.ID) || len(e.Selected()) != 0 {
		t.Error("deleted token came back")
	}
}

// --- Toolbar ---

func clickControl(e *Editor, c *control) {
	x, y := c.rect.X+c.rect.Width/2, c.rect.Y+c.rect.Height/2
	e.processPointer(0, x, y, true, MouseButtonLeft, 0)
	e.processPointer(0, x, y, false, MouseButtonLeft, 0)
}

func TestToolbarAddsTokens(t *testing.T) {
	e, _ := newTestEditor(t)
	for i, k := range Kinds() {
		clickControl(e, e.toolbar.controls[i])
		toks := e.Canvas().Tokens()
		if len(toks) != i+1 || toks[i].Icon != k.Icon {
			t.Fatalf("button %d did not add a %s", i, k.Key)
		}
	}
}

func TestToolbarReleaseElsewhereCancels(t *testing.T) {
	e, _ := newTestEditor(t)
	c := e.toolbar.controls[0]
	e.processPointer(0, c.rect.X+5, c.rect.Y+5, true, MouseButtonLeft, 0)
	e.processPointer(0, c.rect.X+5, c.rect.Y+200, false, MouseButtonLeft, 0)
	if e.Canvas().Len() != 0 {
		t.Error("releasing off the button should not fire it")
	}
}

func TestToolbarCommands(t *testing.T) {
	e, d := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	e.Select(a.ID)

	clickControl(e, e.toolbar.find("スナップ"))
	if !e.Snap() {
		t.Error("snap toggle did not turn snap on")
	}
	clickControl(e, e.toolbar.find("50"))
	if e.TokenSize() != 50 {
		t.Errorf("TokenSize = %v", e.TokenSize())
	}
	clickControl(e, e.toolbar.find("会場"))
	if e.Hall() != "main_hall" {
		t.Errorf("Hall = %q, want main_hall", e.Hall())
	}
	clickControl(e, e.toolbar.find("#caffbf"))
	clickControl(e, e.toolbar.find("色を変更"))
	if a.Style.Fill != "#caffbf" {
		t.Errorf("fill = %q", a.Style.Fill)
	}
	clickControl(e, e.toolbar.find("保存"))
	if _, ok, _ := e.store.Get(context.Background(), e.slot); !ok {
		t.Error("save button did not write the slot")
	}
	clickControl(e, e.toolbar.find("削除"))
	if len(d.confirms) != 1 || e.Canvas().Len() != 0 {
		t.Errorf("delete button: confirms %v, Len %d", d.confirms, e.Canvas().Len())
	}
	clickControl(e, e.toolbar.find("読込"))
	if e.Canvas().Len() != 1 {
		t.Errorf("load button: Len = %d, want 1", e.Canvas().Len())
	}
}

func TestToolbarLayout(t *testing.T) {
	tb := newToolbar()
	top := newViewport(DefaultStageWidth, DefaultStageHeight).originY
	for i, c := range tb.controls {
		if c.rect.Y+c.rect.Height > top {
			t.Errorf("control %q overlaps the stage", c.label)
		}
		if c.rect.X+c.rect.Width > screenMargin+tb.width {
			t.Errorf("control %q extends past the toolbar width", c.label)
		}
		for _, o := range tb.controls[i+1:] {
			if c.rect.Y == o.rect.Y && c.rect.X+c.rect.Width > o.rect.X && o.rect.X+o.rect.Width > c.rect.X {
				t.Errorf("controls %q and %q overlap", c.label, o.label)
			}
		}
	}
}

// --- Keyboard ---

func TestKeyboardShortcuts(t *testing.T) {
	e, d := newTestEditor(t)
	d.value = "Fl"
	a := addAt(t, e, "chair", 100, 100)
	e.Select(a.ID)

	e.handleKey(ebiten.KeyC, ModCtrl)
	e.handleKey(ebiten.KeyV, ModMeta)
	if e.Canvas().Len() != 2 {
		t.Fatalf("Ctrl+C, Cmd+V: Len = %d, want 2", e.Canvas().Len())
	}
	pasted := e.Selected()[0]

	e.handleKey(ebiten.KeyV, 0)
	if e.Canvas().Len() != 2 {
		t.Error("V without a modifier pasted")
	}

	e.handleKey(ebiten.KeyF2, 0)
	if e.Canvas().Token(pasted).Label != "Fl" {
		t.Error("F2 did not rename the selected token")
	}

	e.handleKey(ebiten.KeyS, ModCtrl)
	if e.Status() != savedMessage {
		t.Errorf("Status = %q after Ctrl+S", e.Status())
	}

	e.handleKey(ebiten.KeyDelete, 0)
	if e.Canvas().Len() != 1 || !e.Canvas().Has(a.ID) {
		t.Error("Delete should remove the selected token")
	}

	e.Select(a.ID)
	e.handleKey(ebiten.KeyEscape, 0)
	if len(e.Selected()) != 0 {
		t.Error("Escape should clear the selection")
	}
}

func TestRenameKeyNeedsSingleSelection(t *testing.T) {
	e, d := newTestEditor(t)
	a := addAt(t, e, "chair", 100, 100)
	b := addAt(t, e, "chair", 200, 100)
	e.Select(a.ID, b.ID)
	e.handleKey(ebiten.KeyEnter, 0)
	if len(d.prompts) != 0 {
		t.Error("Enter with two tokens selected should not prompt")
	}
}
