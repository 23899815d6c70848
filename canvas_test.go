package stagelayout

import (
	"errors"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	want := []string{"conductor", "chair", "cello", "cb", "harp", "harp_chair", "percussion", "stand"}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("len(Kinds()) = %d, want %d", len(got), len(want))
	}
	for i, k := range got {
		if k.Key != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, k.Key, want[i])
		}
	}

	got[0].Key = "mutated"
	if Kinds()[0].Key != "conductor" {
		t.Error("Kinds should return a copy")
	}
}

func TestLookupKind(t *testing.T) {
	k, err := LookupKind("percussion")
	if err != nil {
		t.Fatal(err)
	}
	if k.Icon != "打" || k.Label != "打楽器" || k.Shape != ShapeSquare {
		t.Errorf("percussion = %+v", k)
	}
	if _, err := LookupKind("tuba"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("LookupKind(tuba) err = %v, want ErrUnknownKind", err)
	}
}

func TestKindByIcon(t *testing.T) {
	k, ok := KindByIcon("ﾊﾞｽ")
	if !ok || k.Key != "cb" {
		t.Errorf("KindByIcon(ﾊﾞｽ) = %q, %v", k.Key, ok)
	}
	if _, ok := KindByIcon("?"); ok {
		t.Error("unknown icon should not match")
	}
}

func TestNewTokenStyle(t *testing.T) {
	tests := []struct {
		kind      string
		circle    bool
		border    string
		textColor string
	}{
		{"conductor", false, "2px solid #333", "#fff"},
		{"chair", true, "2px solid #333", "#000"},
		{"stand", false, "none", "#000"},
	}
	for _, tt := range tests {
		k, _ := LookupKind(tt.kind)
		tok := newToken(k, 40)
		if tok.Circle() != tt.circle {
			t.Errorf("%s: Circle() = %v, want %v", tt.kind, tok.Circle(), tt.circle)
		}
		if tok.Style.Border != tt.border {
			t.Errorf("%s: border = %q, want %q", tt.kind, tok.Style.Border, tt.border)
		}
		if tok.Style.TextColor != tt.textColor {
			t.Errorf("%s: text color = %q, want %q", tt.kind, tok.Style.TextColor, tt.textColor)
		}
		if tok.X != 40 || tok.Y != 40 || tok.Width != 40 || tok.Height != 40 {
			t.Errorf("%s: geometry = (%v,%v %vx%v)", tt.kind, tok.X, tok.Y, tok.Width, tok.Height)
		}
		if tok.Style.FontSize != 16 {
			t.Errorf("%s: font size = %v, want 16", tt.kind, tok.Style.FontSize)
		}
		if tok.LabelVisible {
			t.Errorf("%s: new token label should be hidden", tt.kind)
		}
	}
}

func TestCanvasAdd(t *testing.T) {
	c := NewCanvas()
	changes := 0
	c.OnChange(func() { changes++ })

	a, err := c.Add("chair", 40)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := c.Add("chair", 40)
	if a.ID == b.ID {
		t.Error("tokens must get distinct IDs")
	}
	if c.Len() != 2 || changes != 2 {
		t.Errorf("Len = %d, changes = %d", c.Len(), changes)
	}
	if _, err := c.Add("tuba", 40); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Add(tuba) err = %v", err)
	}
	if _, err := c.Add("chair", 0); err == nil {
		t.Error("Add with zero size should fail")
	}
	if c.Len() != 2 || changes != 2 {
		t.Error("failed adds must not change the canvas")
	}
}

func TestCanvasPaintOrder(t *testing.T) {
	c := NewCanvas()
	a, _ := c.Add("chair", 40)
	b, _ := c.Add("stand", 40)
	got := c.Tokens()
	if got[0] != a || got[1] != b {
		t.Error("tokens should be in insertion order")
	}
}

func TestCanvasRemove(t *testing.T) {
	c := NewCanvas()
	a, _ := c.Add("chair", 40)
	b, _ := c.Add("chair", 40)
	d, _ := c.Add("stand", 40)

	if n := c.Remove(a.ID, d.ID, "nope"); n != 2 {
		t.Errorf("Remove = %d, want 2", n)
	}
	if c.Len() != 1 || c.Token(b.ID) != b {
		t.Error("only b should remain")
	}
	if c.Has(a.ID) {
		t.Error("a should be gone")
	}

	changes := 0
	c.OnChange(func() { changes++ })
	if n := c.Remove("nope"); n != 0 || changes != 0 {
		t.Errorf("removing unknown ID: n = %d, changes = %d", n, changes)
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas()
	c.Add("chair", 40)
	c.Add("harp", 40)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	if c.Summary() != emptyStageMessage {
		t.Errorf("Summary after Clear = %q", c.Summary())
	}
}

func TestCanvasCounts(t *testing.T) {
	c := NewCanvas()
	for _, k := range []string{"chair", "chair", "conductor", "stand", "chair"} {
		if _, err := c.Add(k, 40); err != nil {
			t.Fatal(err)
		}
	}
	// A token whose icon matches no kind is not counted.
	c.Insert(&Token{ID: "x", Icon: "?"})

	counts := c.Counts()
	want := map[string]int{"chair": 3, "conductor": 1, "stand": 1}
	if len(counts) != len(want) {
		t.Fatalf("Counts = %v, want %v", counts, want)
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("Counts[%s] = %d, want %d", k, counts[k], n)
		}
	}
}

func TestCanvasSummary(t *testing.T) {
	c := NewCanvas()
	if got := c.Summary(); got != "舞台には何もありません" {
		t.Errorf("empty Summary = %q", got)
	}

	c.Add("chair", 40)
	c.Add("conductor", 40)
	c.Add("chair", 40)
	want := "【現在の楽器数】 指揮者:1個 / 椅子:2個"
	if got := c.Summary(); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestCanvasSummary_UnknownIconsOnly(t *testing.T) {
	c := NewCanvas()
	c.Insert(&Token{ID: "x", Icon: "?"})
	if got := c.Summary(); got != emptyStageMessage {
		t.Errorf("Summary = %q, want empty-stage message", got)
	}
}

func TestSelection(t *testing.T) {
	var s Selection
	s.Only("a")
	s.Add("b")
	s.Add("b")
	if got := s.IDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("IDs = %v", got)
	}

	s.Toggle("c")
	s.Toggle("a")
	if got := s.IDs(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("after toggles IDs = %v", got)
	}

	s.Only("z")
	if s.Len() != 1 || !s.Contains("z") {
		t.Errorf("Only: IDs = %v", s.IDs())
	}

	s.Add("y")
	s.Retain(func(id string) bool { return id == "y" })
	if got := s.IDs(); len(got) != 1 || got[0] != "y" {
		t.Errorf("Retain: IDs = %v", got)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("Clear should empty the selection")
	}
}

func TestSelectionToggleTwiceRestores(t *testing.T) {
	var s Selection
	s.Only("a")
	s.Add("b")
	before := s.IDs()
	s.Toggle("c")
	s.Toggle("c")
	after := s.IDs()
	if len(after) != len(before) {
		t.Fatalf("IDs = %v, want %v", after, before)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("IDs = %v, want %v", after, before)
		}
	}
}

func TestSelectionIDsIsCopy(t *testing.T) {
	var s Selection
	s.Only("a")
	ids := s.IDs()
	ids[0] = "b"
	if !s.Contains("a") {
		t.Error("mutating IDs() changed the selection")
	}
}
