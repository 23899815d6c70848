package stagelayout

import "slices"

// Selection is the ordered set of selected token IDs. It holds IDs, not
// tokens; the editor prunes it whenever tokens leave the canvas.
type Selection struct {
	ids []string
}

// Only replaces the selection with exactly id.
func (s *Selection) Only(id string) {
	s.ids = append(s.ids[:0], id)
}

// Toggle adds id if absent and removes it if present, leaving the rest of the
// selection untouched.
func (s *Selection) Toggle(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Add appends id if it is not already selected.
func (s *Selection) Add(id string) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of selected tokens.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the selected IDs in selection order.
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Retain drops every ID for which exists returns false.
func (s *Selection) Retain(exists func(id string) bool) {
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool { return !exists(id) })
}
