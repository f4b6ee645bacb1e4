package folio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{}
	w, h := m.MeasureString("abcd", 10)
	assert.InDelta(t, 22, w, 1e-9)
	assert.Equal(t, 13.0, h)

	w, _ = FixedMeasurer{Advance: 1}.MeasureString("héllo", 10)
	assert.Equal(t, 50.0, w, "runes, not bytes")
}

func TestWrap(t *testing.T) {
	m := FixedMeasurer{Advance: 1}
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"fits", "one two", 100, []string{"one two"}},
		{"breaks", "one two three", 70, []string{"one two", "three"}},
		{"long word", "a extraordinarily b", 30, []string{"a", "extraordinarily", "b"}},
		{"newlines", "one\n\ntwo", 100, []string{"one", "", "two"}},
		{"extra spaces", "  one   two ", 100, []string{"one two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(m, tt.in, 10, tt.width))
		})
	}
}

func TestWrapKeepsEveryWord(t *testing.T) {
	s := "Classified 6,400 MRI images into 4 groups with 98% accuracy using Deep Learning."
	lines := Wrap(FixedMeasurer{}, s, 15, 180)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, strings.Fields(s), strings.Fields(strings.Join(lines, " ")))
}
