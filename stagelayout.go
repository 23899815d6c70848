package stagelayout

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Sentinel errors returned by the editor core.
var (
	// ErrUnknownKind is returned when a token kind key is not in the registry.
	ErrUnknownKind = errors.New("unknown token kind")

	// ErrNoStore is returned by Save and Load when the editor has no store.
	ErrNoStore = errors.New("no layout store configured")
)

// Vec2 is a 2D vector used for positions and offsets in stage pixels.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key, the multi-select modifier
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// shortcut reports whether the platform shortcut modifier (Ctrl or Meta) is held.
func (m KeyModifiers) shortcut() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// ParseColor parses the CSS color forms the layout document uses:
// "#rgb", "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)" and the keywords
// "white", "black" and "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "white":
		return color.NRGBA{255, 255, 255, 255}, nil
	case "black":
		return color.NRGBA{0, 0, 0, 255}, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	return color.NRGBA{}, fmt.Errorf("parse color %q: unsupported syntax", s)
}

func parseHex(h string) (color.NRGBA, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("parse color #%s: bad length", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parseRGBFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("parse color %q: missing parentheses", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want 3 or 4 components", s)
	}
	var c [4]uint8
	c[3] = 255
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		if i == 3 {
			f *= 255
		}
		c[i] = uint8(max(0, min(255, f+0.5)))
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// HexColor normalizes a CSS color string to "#rrggbb", the form the color
// picker holds. Unparseable or empty input yields "#ffffff".
func HexColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return "#ffffff"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// colorOr parses s and falls back to def when s is empty or invalid.
func colorOr(s string, def color.NRGBA) color.NRGBA {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	return def
}
