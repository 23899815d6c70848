package stagelayout

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// Default position of a freshly added token.
	addX, addY = 40.0, 40.0

	defaultBorder = "2px solid #333"
	circleRadius  = "50%"
)

// Style is the visual style of a token. Colors, border and radius are CSS
// strings kept verbatim so they survive a save/load round trip unchanged.
type Style struct {
	Fill      string
	TextColor string
	Border    string // e.g. "2px solid #333" or "none"
	Radius    string // "50%" for circles, "" or a pixel radius otherwise
	FontSize  float64
}

// Token is one placed item on the stage. Tokens are owned by a Canvas; other
// components refer to them by ID.
type Token struct {
	ID           string
	Icon         string
	Label        string
	LabelVisible bool

	// Position of the top-left corner relative to the stage origin.
	X, Y float64

	Width, Height float64
	Style         Style
}

func newTokenID() string {
	return uuid.NewString()
}

// newToken creates a token of kind k at the default add position, styled from
// the registry entry.
func newToken(k Kind, size float64) *Token {
	t := &Token{
		ID:     newTokenID(),
		Icon:   k.Icon,
		Label:  " ",
		X:      addX,
		Y:      addY,
		Width:  size,
		Height: size,
		Style: Style{
			Fill:      k.Color,
			TextColor: k.textColor(),
			Border:    "none",
			FontSize:  math.Floor(size / 2.5),
		},
	}
	if k.Shape == ShapeCircle {
		t.Style.Radius = circleRadius
	}
	if k.HasBorder {
		t.Style.Border = defaultBorder
	}
	return t
}

// Bounds returns the token's rectangle in stage coordinates.
func (t *Token) Bounds() Rect {
	return Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Circle reports whether the token is drawn round.
func (t *Token) Circle() bool {
	return strings.TrimSpace(t.Style.Radius) == circleRadius
}

// CornerRadius returns the pixel corner radius for square tokens. Percent
// values other than 50% are resolved against the shorter side.
func (t *Token) CornerRadius() float64 {
	r := strings.TrimSpace(t.Style.Radius)
	if r == "" {
		return 0
	}
	if p, ok := strings.CutSuffix(r, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return min(t.Width, t.Height) * v / 100
	}
	v, err := ParsePx(r)
	if err != nil {
		return 0
	}
	return v
}

// SetLabel stores a new label. A whitespace-only label is kept but hidden.
func (t *Token) SetLabel(label string) {
	t.Label = label
	t.LabelVisible = strings.TrimSpace(label) != ""
}

// Clone returns a copy of t with a fresh ID.
func (t *Token) Clone() *Token {
	c := *t
	c.ID = newTokenID()
	return &c
}

// border is a parsed CSS border shorthand.
type border struct {
	width float64
	color string
}

// parseBorder understands "<width> <style> <color>" in any order and "none".
func parseBorder(s string) border {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return border{}
	}
	b := border{width: 1, color: "#000"}
	// Browsers serialize colors as rgb(r, g, b), which contains spaces.
	if i := strings.Index(s, "rgb"); i >= 0 {
		b.color = s[i:]
		s = s[:i]
	}
	for _, f := range strings.Fields(s) {
		switch {
		case f == "none" || f == "hidden":
			return border{}
		case strings.HasSuffix(f, "px"):
			if v, err := ParsePx(f); err == nil {
				b.width = v
			}
		case f == "solid" || f == "dashed" || f == "dotted" || f == "double":
		default:
			b.color = f
		}
	}
	return b
}
