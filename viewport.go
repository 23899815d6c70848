package stagelayout

// Fixed screen layout, in logical pixels.
const (
	screenMargin  = 20.0
	toolbarTop    = 8.0
	toolbarRowH   = 34.0
	toolbarRowGap = 6.0
	toolbarRows   = 3
	stageGap      = 12.0
	footerHeight  = 64.0
)

// viewport maps between screen space and stage space. Stage space has its
// origin at the stage's top-left corner, which is where token positions are
// measured from.
type viewport struct {
	originX, originY float64
	width, height    float64
}

func newViewport(stageW, stageH float64) viewport {
	top := toolbarTop + toolbarRows*(toolbarRowH+toolbarRowGap) + stageGap
	return viewport{
		originX: screenMargin,
		originY: top,
		width:   stageW,
		height:  stageH,
	}
}

// screenToStage converts screen coordinates to stage coordinates.
func (v viewport) screenToStage(sx, sy float64) (float64, float64) {
	return sx - v.originX, sy - v.originY
}

// stageToScreen converts stage coordinates to screen coordinates.
func (v viewport) stageToScreen(x, y float64) (float64, float64) {
	return x + v.originX, y + v.originY
}

// screenRect returns the stage rectangle in screen space.
func (v viewport) screenRect() Rect {
	return Rect{X: v.originX, Y: v.originY, Width: v.width, Height: v.height}
}

// containsScreen reports whether the screen point lies on the stage.
func (v viewport) containsScreen(sx, sy float64) bool {
	return v.screenRect().Contains(sx, sy)
}

// footerY returns the screen Y of the first line under the stage.
func (v viewport) footerY() float64 {
	return v.originY + v.height + 10
}

// screenSize returns the logical screen size needed for the stage and a
// toolbar of the given width.
func (v viewport) screenSize(toolbarWidth float64) (int, int) {
	w := max(v.width, toolbarWidth) + 2*screenMargin
	h := v.originY + v.height + footerHeight
	return int(w), int(h)
}
