package stagelayout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlot is the storage key the layout is saved under.
const DefaultSlot = "stageLayout_quick"

// Item is one token in the persisted layout. Geometric fields are CSS pixel
// strings such as "40px".
type Item struct {
	Icon            string `json:"icon"`
	Label           string `json:"label"`
	IsLabelVisible  bool   `json:"isLabelVisible"`
	Left            string `json:"left"`
	Top             string `json:"top"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	BorderRadius    string `json:"borderRadius"`
	Border          string `json:"border"`
	Width           string `json:"width"`
	Height          string `json:"height"`
	FontSize        string `json:"fontSize"`
}

// Document is the persisted layout: the hall background and every token in
// paint order.
type Document struct {
	Hall  string `json:"hall"`
	Items []Item `json:"items"`
}

// NewDocument snapshots tokens into a document.
func NewDocument(hall string, tokens []*Token) Document {
	doc := Document{Hall: hall, Items: make([]Item, 0, len(tokens))}
	for _, t := range tokens {
		doc.Items = append(doc.Items, Item{
			Icon:            t.Icon,
			Label:           t.Label,
			IsLabelVisible:  t.LabelVisible,
			Left:            Px(t.X),
			Top:             Px(t.Y),
			BackgroundColor: t.Style.Fill,
			TextColor:       t.Style.TextColor,
			BorderRadius:    t.Style.Radius,
			Border:          t.Style.Border,
			Width:           Px(t.Width),
			Height:          Px(t.Height),
			FontSize:        Px(t.Style.FontSize),
		})
	}
	return doc
}

// Tokens rebuilds tokens from the document, each with a fresh ID. A
// malformed pixel value fails the whole document.
func (d Document) Tokens() ([]*Token, error) {
	out := make([]*Token, 0, len(d.Items))
	for i, it := range d.Items {
		t, err := it.token()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (it Item) token() (*Token, error) {
	var g [5]float64
	for i, f := range []struct {
		name, value string
	}{
		{"left", it.Left},
		{"top", it.Top},
		{"width", it.Width},
		{"height", it.Height},
		{"fontSize", it.FontSize},
	} {
		v, err := ParsePx(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		g[i] = v
	}
	return &Token{
		ID:           newTokenID(),
		Icon:         it.Icon,
		Label:        it.Label,
		LabelVisible: it.IsLabelVisible,
		X:            g[0],
		Y:            g[1],
		Width:        g[2],
		Height:       g[3],
		Style: Style{
			Fill:      it.BackgroundColor,
			TextColor: it.TextColor,
			Border:    it.Border,
			Radius:    it.BorderRadius,
			FontSize:  g[4],
		},
	}, nil
}

// EncodeDocument serializes doc to JSON.
func EncodeDocument(doc Document) ([]byte, error) {
	if doc.Items == nil {
		doc.Items = []Item{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a JSON layout. A missing items list decodes as empty.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode layout: %w", err)
	}
	return doc, nil
}

// Px formats v as a CSS pixel string. The shortest exact decimal is used so
// parsing it back yields v.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePx parses a CSS pixel string. The "px" suffix is optional and an
// empty string is zero.
func ParsePx(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse pixel value %q: %w", s, err)
	}
	return v, nil
}
