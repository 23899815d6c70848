package stagelayout

import "fmt"

// Shape selects the outline a token kind is drawn with.
type Shape uint8

const (
	ShapeCircle Shape = iota // round token (radius 50%)
	ShapeSquare              // square token (no radius)
)

// Kind is the registry entry for one token type: its icon, colors, shape and
// the labels shown on its palette button and in the count summary.
type Kind struct {
	Key         string
	Icon        string
	Color       string
	TextColor   string // empty means the default "#000"
	Label       string
	ButtonLabel string
	Shape       Shape
	HasBorder   bool
}

// kinds is the fixed palette in display order. Counting, the summary line and
// the toolbar all iterate it in this order.
var kinds = []Kind{
	{Key: "conductor", Icon: "指", Color: "#333", TextColor: "#fff", Label: " ", ButtonLabel: "指揮者", Shape: ShapeSquare, HasBorder: true},
	{Key: "chair", Icon: "O", Color: "#ffadad", Label: " ", ButtonLabel: "椅子", Shape: ShapeCircle, HasBorder: true},
	{Key: "cello", Icon: "ﾋﾟｱﾉ", Color: "#ffd6a5", Label: " ", ButtonLabel: "ピアノ椅子", Shape: ShapeCircle, HasBorder: true},
	{Key: "cb", Icon: "ﾊﾞｽ", Color: "#fdffb6", Label: " ", ButtonLabel: "バス椅子", Shape: ShapeCircle, HasBorder: true},
	{Key: "harp", Icon: "Hp", Color: "#caffbf", Label: " ", ButtonLabel: "ハープ", Shape: ShapeSquare, HasBorder: true},
	{Key: "harp_chair", Icon: "H席", Color: "#caffbf", Label: " ", ButtonLabel: "ハープ椅子", Shape: ShapeCircle, HasBorder: true},
	{Key: "percussion", Icon: "打", Color: "#ffc6ff", Label: "打楽器", ButtonLabel: "打楽器", Shape: ShapeSquare, HasBorder: true},
	{Key: "stand", Icon: "X", Color: "#dddddd", Label: " ", ButtonLabel: "譜面台", Shape: ShapeSquare, HasBorder: false},
}

// Kinds returns a copy of the registry in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// LookupKind returns the registry entry for key.
func LookupKind(key string) (Kind, error) {
	for _, k := range kinds {
		if k.Key == key {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, key)
}

// KindByIcon returns the first registry entry whose icon is icon. Tokens are
// attributed to kinds by icon text, so loaded or pasted tokens count the same
// as freshly added ones.
func KindByIcon(icon string) (Kind, bool) {
	for _, k := range kinds {
		if k.Icon == icon {
			return k, true
		}
	}
	return Kind{}, false
}

// textColor returns the kind's text color or the black default.
func (k Kind) textColor() string {
	if k.TextColor == "" {
		return "#000"
	}
	return k.TextColor
}
