package stagelayout

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stagelayout/store"
)

// Editor defaults.
const (
	DefaultStageWidth  = 800
	DefaultStageHeight = 500
	DefaultTokenSize   = 40
	DefaultExportDir   = "."
)

// Status and dialog messages.
const (
	savedMessage    = "現在の配置を保存しました！"
	loadedMessage   = "保存した配置を読み込みました"
	reloadedMessage = "保存データが更新されたため再読み込みしました"
	renamePrompt    = "名前（パート・奏者）を入力してください:"
	clearConfirm    = "舞台を空にしますか？"
	deleteConfirm   = "%d個を削除しますか？"
)

// Options configures a new Editor. Zero values select the defaults.
type Options struct {
	// StageWidth and StageHeight are the stage size in pixels. The exported
	// image has the same size.
	StageWidth, StageHeight int

	// TokenSize is the width and height of newly added tokens.
	TokenSize float64

	// Snap turns on 5px grid snapping while dragging.
	Snap bool

	// Hall is the initial background. Empty means HallNone.
	Hall string

	// Store and Slot select where Save and Load keep the layout. A nil
	// Store makes Save and Load return ErrNoStore.
	Store store.Store
	Slot  string

	// ExportDir is the directory the PNG export is written to.
	ExportDir string

	// Dialogs answers confirmations and label prompts. Nil shows them as a
	// modal overlay inside the window.
	Dialogs Dialogs

	Logger *log.Logger

	// Context is used for store calls made from inside Update.
	Context context.Context
}

// Editor is the layout editor. It owns the canvas, the selection and the
// clipboard, and implements ebiten.Game. All state is mutated on the
// goroutine that runs Update; the only exception is RequestReload, which is
// safe to call from anywhere.
type Editor struct {
	canvas    *Canvas
	selection Selection
	clipboard Clipboard

	hall      string
	snap      bool
	tokenSize float64
	picker    string
	summary   string
	status    statusLine
	pulse     *pulse

	store         store.Store
	slot          string
	exportDir     string
	exportPending bool
	lastPersisted []byte
	reloads       chan struct{}

	dialogs Dialogs
	modal   *windowDialogs // non-nil when dialogs are shown in the window

	log *log.Logger
	ctx context.Context

	view             viewport
	toolbar          *toolbar
	screenW, screenH int
	fonts            *fontCache
	fontErr          error

	// Input state
	pointers     [maxPointers]pointerState
	captured     [maxPointers]string
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	drag         *dragSession
	frame        int
	lastClick    clickRecord
	injectQueue  []syntheticPointerEvent
	keyQueue     []syntheticKey
	textQueue    []rune
	keyBuf       []ebiten.Key
	charBuf      []rune

	runner *ScriptRunner
	quit   atomic.Bool
}

// NewEditor creates an editor with an empty canvas. It creates no GPU
// resources; those are made on the first Draw.
func NewEditor(opts Options) *Editor {
	if opts.StageWidth <= 0 {
		opts.StageWidth = DefaultStageWidth
	}
	if opts.StageHeight <= 0 {
		opts.StageHeight = DefaultStageHeight
	}
	if opts.TokenSize <= 0 {
		opts.TokenSize = DefaultTokenSize
	}
	if opts.Hall == "" {
		opts.Hall = HallNone
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.ExportDir == "" {
		opts.ExportDir = DefaultExportDir
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	e := &Editor{
		canvas:    NewCanvas(),
		hall:      opts.Hall,
		snap:      opts.Snap,
		tokenSize: opts.TokenSize,
		picker:    "#ffffff",
		pulse:     newPulse(0.35, 1, 1.2),
		store:     opts.Store,
		slot:      opts.Slot,
		exportDir: opts.ExportDir,
		reloads:   make(chan struct{}, 1),
		log:       opts.Logger,
		ctx:       opts.Context,
		view:      newViewport(float64(opts.StageWidth), float64(opts.StageHeight)),
		toolbar:   newToolbar(),
	}
	e.screenW, e.screenH = e.view.screenSize(e.toolbar.width)

	e.dialogs = opts.Dialogs
	if e.dialogs == nil {
		e.modal = newWindowDialogs(e.screenW, e.screenH)
		e.dialogs = e.modal
	}

	e.canvas.OnChange(e.refresh)
	e.refresh()
	return e
}

// refresh restores the selection invariant and recounts tokens. It runs
// after every canvas mutation and at the end of each pointer interaction.
func (e *Editor) refresh() {
	e.selection.Retain(e.canvas.Has)
	e.summary = e.canvas.Summary()
}

// Canvas returns the editor's canvas.
func (e *Editor) Canvas() *Canvas {
	return e.canvas
}

// Summary returns the per-kind count line.
func (e *Editor) Summary() string {
	return e.summary
}

// Status returns the transient status message, or "" when none is showing.
func (e *Editor) Status() string {
	return e.status.text
}

// Selected returns the selected token IDs in selection order.
func (e *Editor) Selected() []string {
	return e.selection.IDs()
}

// Select replaces the selection with the given tokens. Unknown IDs are
// dropped.
func (e *Editor) Select(ids ...string) {
	e.selection.Clear()
	for _, id := range ids {
		if e.canvas.Has(id) {
			e.selection.Add(id)
		}
	}
}

func (e *Editor) selectedTokens() []*Token {
	ids := e.selection.IDs()
	out := make([]*Token, 0, len(ids))
	for _, id := range ids {
		if t := e.canvas.Token(id); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// ScreenSize returns the logical screen size the editor lays itself out in.
func (e *Editor) ScreenSize() (int, int) {
	return e.screenW, e.screenH
}

// StageToScreen converts a stage position to screen coordinates.
func (e *Editor) StageToScreen(x, y float64) (float64, float64) {
	return e.view.stageToScreen(x, y)
}

// --- Operations ---

// AddToken places a new token of the given kind at the default position
// using the current token size.
func (e *Editor) AddToken(kind string) (*Token, error) {
	t, err := e.canvas.Add(kind, e.tokenSize)
	if err != nil {
		return nil, err
	}
	e.log.Debug("token added", "kind", kind, "size", e.tokenSize)
	return t, nil
}

// DeleteSelected asks for confirmation and then removes every selected
// token. It does nothing, without asking, when the selection is empty.
func (e *Editor) DeleteSelected() {
	ids := e.selection.IDs()
	if len(ids) == 0 {
		return
	}
	e.dialogs.Confirm(fmt.Sprintf(deleteConfirm, len(ids)), func(ok bool) {
		if !ok {
			e.log.Debug("delete declined", "tokens", len(ids))
			return
		}
		e.cancelDrag()
		n := e.canvas.Remove(ids...)
		e.selection.Clear()
		e.log.Debug("tokens deleted", "count", n)
	})
}

// ClearAll asks for confirmation and then empties the stage.
func (e *Editor) ClearAll() {
	e.dialogs.Confirm(clearConfirm, func(ok bool) {
		if !ok {
			e.log.Debug("clear declined")
			return
		}
		e.cancelDrag()
		e.canvas.Clear()
		e.selection.Clear()
		e.log.Debug("stage cleared")
	})
}

// Rename prompts for a new label for the token. Canceling leaves the label
// unchanged; a whitespace-only answer hides the label.
func (e *Editor) Rename(id string) {
	t := e.canvas.Token(id)
	if t == nil {
		return
	}
	e.dialogs.Prompt(renamePrompt, t.Label, func(value string, ok bool) {
		if !ok {
			return
		}
		// The token may have gone while the prompt was open.
		if t := e.canvas.Token(id); t != nil {
			t.SetLabel(value)
		}
	})
}

// Copy snapshots the selected tokens into the clipboard. It reports false
// and keeps the previous clipboard when nothing is selected.
func (e *Editor) Copy() bool {
	ok := e.clipboard.Copy(e.selectedTokens())
	if ok {
		e.log.Debug("copied", "tokens", e.clipboard.Len())
	}
	return ok
}

// Paste stamps one new token per clipboard entry at the paste position and
// selects exactly the new tokens. It returns the number of tokens created.
func (e *Editor) Paste() int {
	if e.clipboard.Len() == 0 {
		return 0
	}
	e.selection.Clear()
	tokens := e.clipboard.materialize()
	e.canvas.Insert(tokens...)
	for _, t := range tokens {
		e.selection.Add(t.ID)
	}
	e.log.Debug("pasted", "tokens", len(tokens))
	return len(tokens)
}

// PickerColor returns the current picker color as "#rrggbb".
func (e *Editor) PickerColor() string {
	return e.picker
}

// SetPickerColor sets the picker color without touching any token.
func (e *Editor) SetPickerColor(c string) error {
	if _, err := ParseColor(c); err != nil {
		return err
	}
	e.picker = HexColor(c)
	return nil
}

// ApplyPickerColor sets the fill of every selected token to the picker
// color.
func (e *Editor) ApplyPickerColor() {
	for _, t := range e.selectedTokens() {
		t.Style.Fill = e.picker
	}
}

// Hall returns the current hall name.
func (e *Editor) Hall() string {
	return e.hall
}

// SetHall changes the stage background. Empty selects HallNone.
func (e *Editor) SetHall(name string) {
	if name == "" {
		name = HallNone
	}
	e.hall = name
}

// Snap reports whether grid snapping is on.
func (e *Editor) Snap() bool {
	return e.snap
}

// SetSnap turns grid snapping on or off.
func (e *Editor) SetSnap(on bool) {
	e.snap = on
}

// TokenSize returns the size used for newly added tokens.
func (e *Editor) TokenSize() float64 {
	return e.tokenSize
}

// SetTokenSize sets the size used for newly added tokens. Existing tokens
// keep their size.
func (e *Editor) SetTokenSize(px float64) error {
	if px <= 0 {
		return fmt.Errorf("token size must be positive, got %v", px)
	}
	e.tokenSize = px
	return nil
}

// SetScriptRunner attaches a script. It advances from Update, before input
// is processed.
func (e *Editor) SetScriptRunner(r *ScriptRunner) {
	e.runner = r
}

// RequestQuit makes the next Update end the game loop. It is safe to call
// from any goroutine.
func (e *Editor) RequestQuit() {
	e.quit.Store(true)
}

// cancelDrag ends any drag session without a final move.
func (e *Editor) cancelDrag() {
	if e.drag == nil {
		return
	}
	e.ReleasePointer(e.drag.pointerID)
	e.drag = nil
}

func (e *Editor) dialogOpen() bool {
	return e.modal != nil && e.modal.open()
}

// --- ebiten.Game ---

// Update advances the editor by one tick.
func (e *Editor) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	e.drainReloads()
	if e.runner != nil {
		e.runner.step(e)
	}
	e.processInput()
	e.pulse.update(dt)
	e.status.update(dt)

	if e.quit.Load() {
		return ebiten.Termination
	}
	return nil
}

// Layout returns the fixed logical screen size; Ebitengine scales it to the
// window.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.screenW, e.screenH
}
