// Package words splits text into display words and computes where each word
// is drawn on screen, including its Optimal Recognition Point (ORP).
package words

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Word is a single whitespace-delimited token ready for display.
type Word struct {
	Text      string
	Width     int // terminal cells
	Graphemes int // user-perceived characters
}

// New measures s and returns it as a Word.
func New(s string) Word {
	return Word{
		Text:      s,
		Width:     runewidth.StringWidth(s),
		Graphemes: uniseg.GraphemeClusterCount(s),
	}
}

// Split breaks text on Unicode whitespace. Empty fields are dropped.
func Split(text string) []Word {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	out := make([]Word, 0, len(fields))
	for _, f := range fields {
		out = append(out, New(f))
	}
	return out
}

// ORPIndex returns the grapheme index the eye should fix on for a word of
// n graphemes.
func ORPIndex(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	default:
		return 4
	}
}

// Parts splits the word around its ORP grapheme. For an empty word all three
// parts are empty.
func (w Word) Parts() (before, focus, after string) {
	orp := ORPIndex(w.Graphemes)
	g := uniseg.NewGraphemes(w.Text)
	var b, a strings.Builder
	i := 0
	for g.Next() {
		switch {
		case i < orp:
			b.WriteString(g.Str())
		case i == orp:
			focus = g.Str()
		default:
			a.WriteString(g.Str())
		}
		i++
	}
	return b.String(), focus, a.String()
}

// Placement says where a word starts on a row of a given width.
type Placement struct {
	Center int // column of the screen centre
	Start  int // column of the word's first cell
}

// Layout places w on a row cols cells wide. With focus the ORP grapheme lands
// on the centre column, otherwise the word as a whole is centred. Start never
// goes below zero.
func Layout(w Word, cols int, focus bool) Placement {
	if cols < 0 {
		cols = 0
	}
	center := cols / 2
	var offset int
	if focus && w.Graphemes > 0 {
		before, _, _ := w.Parts()
		offset = runewidth.StringWidth(before)
	} else {
		offset = w.Width / 2
	}
	start := center - offset
	if start < 0 {
		start = 0
	}
	return Placement{Center: center, Start: start}
}
