package stagelayout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in a session script. Coordinates are stage
// coordinates.
type scriptStep struct {
	Action string   `json:"action"`
	Kind   string   `json:"kind,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Key    string   `json:"key,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	Text   string   `json:"text,omitempty"`
	Hall   string   `json:"hall,omitempty"`
	On     bool     `json:"on,omitempty"`
	Color  string   `json:"color,omitempty"`
	Size   float64  `json:"size,omitempty"`

	key  ebiten.Key
	mods KeyModifiers
}

// script is the top-level JSON structure of a session script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// scriptKeys are the key names a script may press.
var scriptKeys = map[string]ebiten.Key{
	"a":         ebiten.KeyA,
	"c":         ebiten.KeyC,
	"s":         ebiten.KeyS,
	"v":         ebiten.KeyV,
	"backspace": ebiten.KeyBackspace,
	"delete":    ebiten.KeyDelete,
	"enter":     ebiten.KeyEnter,
	"escape":    ebiten.KeyEscape,
	"f2":        ebiten.KeyF2,
}

var scriptMods = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// ScriptRunner plays a scripted editing session, one step per frame, through
// the same input paths as a real user. Attach it with Editor.SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script. Unknown actions, keys and
// modifiers are rejected here rather than mid-session.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "add":
		if _, err := LookupKind(st.Kind); err != nil {
			return err
		}
	case "key":
		k, ok := scriptKeys[strings.ToLower(st.Key)]
		if !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		st.key = k
		for _, m := range st.Mods {
			mod, ok := scriptMods[strings.ToLower(m)]
			if !ok {
				return fmt.Errorf("unknown modifier %q", m)
			}
			st.mods |= mod
		}
	case "color":
		if _, err := ParseColor(st.Color); err != nil {
			return err
		}
	case "size":
		if st.Size <= 0 {
			return fmt.Errorf("size must be positive")
		}
	case "click", "shiftclick", "dblclick", "drag", "text", "wait",
		"save", "load", "export", "hall", "snap", "recolor", "quit":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Editor.Update before
// input is processed.
func (r *ScriptRunner) step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.injectPending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.run(e, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !e.injectPending() {
		r.done = true
	}
}

func (r *ScriptRunner) run(e *Editor, st scriptStep) {
	switch st.Action {
	case "add":
		if _, err := e.AddToken(st.Kind); err != nil {
			e.log.Error("script add", "kind", st.Kind, "err", err)
		}
	case "click":
		e.InjectClick(e.view.stageToScreen(st.X, st.Y))
	case "shiftclick":
		x, y := e.view.stageToScreen(st.X, st.Y)
		e.InjectClickWith(x, y, ModShift)
	case "dblclick":
		x, y := e.view.stageToScreen(st.X, st.Y)
		e.InjectClick(x, y)
		e.InjectClick(x, y)
	case "drag":
		fx, fy := e.view.stageToScreen(st.FromX, st.FromY)
		tx, ty := e.view.stageToScreen(st.ToX, st.ToY)
		e.InjectDrag(fx, fy, tx, ty, max(st.Frames, 2))
	case "key":
		e.InjectKey(st.key, st.mods)
	case "text":
		e.InjectText(st.Text)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "save":
		e.saveFromUI()
	case "load":
		e.loadFromUI()
	case "export":
		e.Export()
	case "hall":
		e.SetHall(st.Hall)
	case "snap":
		e.SetSnap(st.On)
	case "color":
		_ = e.SetPickerColor(st.Color)
	case "recolor":
		e.ApplyPickerColor()
	case "size":
		_ = e.SetTokenSize(st.Size)
	case "quit":
		e.RequestQuit()
	}
}
