package stagelayout

import "math"

// SnapSize is the grid, in stage pixels, that dragged positions round to
// when snapping is on.
const SnapSize = 5.0

// Snap rounds v to the nearest multiple of SnapSize. Halves round toward
// positive infinity on both sides of zero.
func Snap(v float64) float64 {
	return math.Floor(v/SnapSize+0.5) * SnapSize
}

type dragStart struct {
	token *Token
	x, y  float64
}

// dragSession moves a group of tokens together for the lifetime of one
// captured pointer.
type dragSession struct {
	pointerID          int
	anchor             *Token
	pointerX, pointerY float64
	starts             []dragStart
}

// newDragSession records the start position of every token and of the pointer.
func newDragSession(pointerID int, anchor *Token, px, py float64, tokens []*Token) *dragSession {
	d := &dragSession{
		pointerID: pointerID,
		anchor:    anchor,
		pointerX:  px,
		pointerY:  py,
		starts:    make([]dragStart, 0, len(tokens)),
	}
	for _, t := range tokens {
		d.starts = append(d.starts, dragStart{token: t, x: t.X, y: t.Y})
	}
	return d
}

// move places every token at its start position plus the pointer's total
// displacement, snapping each axis independently when snap is set.
func (d *dragSession) move(px, py float64, snap bool) {
	dx := px - d.pointerX
	dy := py - d.pointerY
	for _, s := range d.starts {
		x := s.x + dx
		y := s.y + dy
		if snap {
			x = Snap(x)
			y = Snap(y)
		}
		s.token.X = x
		s.token.Y = y
	}
}
