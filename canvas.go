package stagelayout

import (
	"fmt"
	"strings"
)

const emptyStageMessage = "舞台には何もありません"

// Canvas is the ordered set of tokens on the stage. Later tokens draw on top
// of earlier ones and win hit tests. Every mutation calls the change hook so
// the owner can recount and redraw.
type Canvas struct {
	tokens   []*Token
	onChange func()
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// OnChange registers fn to run after every mutation. Only one hook is kept.
func (c *Canvas) OnChange(fn func()) {
	c.onChange = fn
}

func (c *Canvas) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Add creates a token of the given kind at the default position.
func (c *Canvas) Add(kindKey string, size float64) (*Token, error) {
	k, err := LookupKind(kindKey)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("add %s: size must be positive, got %v", kindKey, size)
	}
	t := newToken(k, size)
	c.tokens = append(c.tokens, t)
	c.changed()
	return t, nil
}

// Insert appends fully specified tokens, as produced by load and paste.
func (c *Canvas) Insert(tokens ...*Token) {
	if len(tokens) == 0 {
		return
	}
	c.tokens = append(c.tokens, tokens...)
	c.changed()
}

// Remove deletes the tokens with the given IDs and returns how many were
// removed. Unknown IDs are ignored.
func (c *Canvas) Remove(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := c.tokens[:0]
	for _, t := range c.tokens {
		if _, ok := drop[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	removed := len(c.tokens) - len(kept)
	for i := len(kept); i < len(c.tokens); i++ {
		c.tokens[i] = nil
	}
	c.tokens = kept
	if removed > 0 {
		c.changed()
	}
	return removed
}

// Clear removes every token.
func (c *Canvas) Clear() {
	clear(c.tokens)
	c.tokens = c.tokens[:0]
	c.changed()
}

// Tokens returns the tokens in paint order. The returned slice MUST NOT be
// mutated.
func (c *Canvas) Tokens() []*Token {
	return c.tokens
}

// Len returns the number of tokens.
func (c *Canvas) Len() int {
	return len(c.tokens)
}

// Token returns the token with the given ID, or nil.
func (c *Canvas) Token(id string) *Token {
	for _, t := range c.tokens {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Has reports whether a token with the given ID exists.
func (c *Canvas) Has(id string) bool {
	return c.Token(id) != nil
}

// Counts returns the number of tokens per registry kind key. Kinds with no
// tokens are absent. Tokens whose icon matches no kind are not counted.
func (c *Canvas) Counts() map[string]int {
	byIcon := make(map[string]int)
	for _, t := range c.tokens {
		byIcon[t.Icon]++
	}
	counts := make(map[string]int)
	for _, k := range kinds {
		if n := byIcon[k.Icon]; n > 0 {
			counts[k.Key] = n
		}
	}
	return counts
}

// Summary renders the per-kind count line shown under the stage, or the
// empty-stage message when nothing registered is placed.
func (c *Canvas) Summary() string {
	counts := c.Counts()
	var parts []string
	for _, k := range kinds {
		if n := counts[k.Key]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d個", k.ButtonLabel, n))
		}
	}
	if len(parts) == 0 {
		return emptyStageMessage
	}
	return "【現在の楽器数】 " + strings.Join(parts, " / ")
}
