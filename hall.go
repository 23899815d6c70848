package stagelayout

import "image/color"

// HallNone is the sentinel for a plain white stage.
const HallNone = "none"

// Hall is a named stage background. The front band marks the audience side
// of the stage.
type Hall struct {
	Name       string
	Label      string
	Background color.NRGBA
	Front      color.NRGBA
	FrontDepth float64
}

var halls = []Hall{
	{Name: HallNone, Label: "なし", Background: color.NRGBA{255, 255, 255, 255}},
	{
		Name: "main_hall", Label: "大ホール",
		Background: color.NRGBA{0xf3, 0xe3, 0xc3, 255},
		Front:      color.NRGBA{0xc8, 0xa2, 0x6e, 255},
		FrontDepth: 28,
	},
	{
		Name: "small_hall", Label: "小ホール",
		Background: color.NRGBA{0xe8, 0xee, 0xf7, 255},
		Front:      color.NRGBA{0xa9, 0xb8, 0xd0, 255},
		FrontDepth: 20,
	},
	{
		Name: "outdoor", Label: "野外",
		Background: color.NRGBA{0xdf, 0xf0, 0xd8, 255},
		Front:      color.NRGBA{0x9c, 0xc6, 0x8c, 255},
		FrontDepth: 24,
	},
}

// Halls returns the selectable halls in menu order.
func Halls() []Hall {
	out := make([]Hall, len(halls))
	copy(out, halls)
	return out
}

// LookupHall returns the hall named name. Unknown names get the plain
// styling but keep their name so a loaded document saves back unchanged.
func LookupHall(name string) Hall {
	for _, h := range halls {
		if h.Name == name {
			return h
		}
	}
	h := halls[0]
	h.Name = name
	h.Label = name
	return h
}

// nextHall returns the hall after name in menu order, wrapping around.
func nextHall(name string) string {
	for i, h := range halls {
		if h.Name == name {
			return halls[(i+1)%len(halls)].Name
		}
	}
	return halls[0].Name
}
