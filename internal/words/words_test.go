package words

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	got := Split("  the quick\tbrown\n\nfox  ")
	texts := make([]string, 0, len(got))
	for _, w := range got {
		texts = append(texts, w.Text)
	}
	if diff := cmp.Diff([]string{"the", "quick", "brown", "fox"}, texts); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split(" \n\t  "))
}

func TestORPIndex(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0},
		{2, 1}, {5, 1},
		{6, 2}, {9, 2},
		{10, 3}, {13, 3},
		{14, 4}, {40, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ORPIndex(tt.n), "ORPIndex(%d)", tt.n)
	}
}

func TestNew_MeasuresGraphemes(t *testing.T) {
	w := New("café")
	assert.Equal(t, 4, w.Graphemes)
	assert.Equal(t, 4, w.Width)

	// e + combining acute is one grapheme
	w = New("cafe\u0301")
	assert.Equal(t, 4, w.Graphemes)
	assert.Equal(t, 4, w.Width)

	// wide CJK runes take two cells each
	w = New("日本語")
	assert.Equal(t, 3, w.Graphemes)
	assert.Equal(t, 6, w.Width)
}

func TestParts(t *testing.T) {
	before, focus, after := New("reading").Parts()
	assert.Equal(t, "re", before)
	assert.Equal(t, "a", focus)
	assert.Equal(t, "ding", after)

	before, focus, after = New("a").Parts()
	assert.Equal(t, "", before)
	assert.Equal(t, "a", focus)
	assert.Equal(t, "", after)

	before, focus, after = Word{}.Parts()
	assert.Equal(t, "", before+focus+after)
}

func TestLayout(t *testing.T) {
	w := New("reading") // width 7, ORP 2

	p := Layout(w, 80, false)
	assert.Equal(t, 40, p.Center)
	assert.Equal(t, 37, p.Start)

	p = Layout(w, 80, true)
	assert.Equal(t, 38, p.Start)

	// saturates at zero on tiny terminals
	p = Layout(New("extraordinarily"), 4, false)
	assert.Equal(t, 0, p.Start)
	p = Layout(w, -10, true)
	assert.Equal(t, 0, p.Start)
}

func TestLayout_WideFocus(t *testing.T) {
	// ORP of a three-grapheme word is index 1; one wide rune precedes it
	p := Layout(New("日本語"), 20, true)
	assert.Equal(t, 8, p.Start)
}
