package stagelayout

// Paste position. Every paste stamps its tokens here; there is no collision
// avoidance, so repeated pastes stack.
const pasteX, pasteY = 60.0, 60.0

// ClipEntry is a value copy of one token's visual properties, without its
// position.
type ClipEntry struct {
	Icon          string
	Label         string
	LabelVisible  bool
	Width, Height float64
	Style         Style
}

// Clipboard holds the snapshot taken by the last copy.
type Clipboard struct {
	entries []ClipEntry
}

// Copy replaces the clipboard with snapshots of tokens. It reports false and
// leaves the clipboard unchanged when tokens is empty.
func (c *Clipboard) Copy(tokens []*Token) bool {
	if len(tokens) == 0 {
		return false
	}
	c.entries = c.entries[:0]
	for _, t := range tokens {
		c.entries = append(c.entries, ClipEntry{
			Icon:         t.Icon,
			Label:        t.Label,
			LabelVisible: t.LabelVisible,
			Width:        t.Width,
			Height:       t.Height,
			Style:        t.Style,
		})
	}
	return true
}

// Len returns the number of entries.
func (c *Clipboard) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the clipboard contents.
func (c *Clipboard) Entries() []ClipEntry {
	out := make([]ClipEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// materialize creates one new token per entry at the paste position. The
// clipboard itself is not consumed.
func (c *Clipboard) materialize() []*Token {
	out := make([]*Token, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, &Token{
			ID:           newTokenID(),
			Icon:         e.Icon,
			Label:        e.Label,
			LabelVisible: e.LabelVisible,
			X:            pasteX,
			Y:            pasteY,
			Width:        e.Width,
			Height:       e.Height,
			Style:        e.Style,
		})
	}
	return out
}
