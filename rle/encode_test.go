package rle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Encoder Tests
// ============================================================

func TestEncode_RunBoundaries(t *testing.T) {
	got := Encode([]string{"aaabbbccd"})
	want := []Token{Run('a', 3), Run('b', 3), Run('c', 2), Run('d', 1), LineBreak()}
	assert.Equal(t, want, got)
}

func TestEncode_SingleCharacter(t *testing.T) {
	got := Encode([]string{"x"})
	assert.Equal(t, []Token{Run('x', 1), LineBreak()}, got)
}

func TestEncode_UniformLine(t *testing.T) {
	for _, n := range []int{1, 2, 17, 100} {
		line := strings.Repeat("%", n)
		got := EncodeLine(line)
		require.Len(t, got, 2, "length %d", n)
		assert.Equal(t, Run('%', n), got[0])
		assert.True(t, got[1].IsLineBreak())
	}
}

func TestEncode_LineBreakAfterEveryLine(t *testing.T) {
	tokens := Encode([]string{"ab", "c", "dd"})
	want := []Token{
		Run('a', 1), Run('b', 1), LineBreak(),
		Run('c', 1), LineBreak(),
		Run('d', 2), LineBreak(),
	}
	assert.Equal(t, want, tokens)
	assert.True(t, tokens[len(tokens)-1].IsLineBreak(), "last token must be a line break")
}

func TestEncode_Multibyte(t *testing.T) {
	got := Encode([]string{"ééé∅"})
	assert.Equal(t, []Token{Run('é', 3), Run('∅', 1), LineBreak()}, got)
}

func TestEncode_EmptyLines(t *testing.T) {
	lines := []string{"", "ab", "", "", "c", ""}

	tests := []struct {
		name   string
		policy EmptyLinePolicy
		want   []Token
	}{
		{
			name:   "collapse",
			policy: EmptyLinesCollapse,
			want:   []Token{Run('a', 1), Run('b', 1), LineBreak(), Run('c', 1), LineBreak()},
		},
		{
			name:   "preserve",
			policy: EmptyLinesPreserve,
			want: []Token{
				LineBreak(),
				Run('a', 1), Run('b', 1), LineBreak(),
				LineBreak(),
				LineBreak(),
				Run('c', 1), LineBreak(),
				LineBreak(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeWithOptions(lines, EncodeOptions{EmptyLines: tt.policy})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_LineBreakCountMatchesNonEmptyLines(t *testing.T) {
	lines := []string{"", "aa", "b", "", "cc c", ""}
	tokens := Encode(lines)
	assert.Equal(t, 3, CountLineBreaks(tokens))

	tokens = EncodeWithOptions(lines, EncodeOptions{EmptyLines: EmptyLinesPreserve})
	assert.Equal(t, len(lines), CountLineBreaks(tokens))
}

func TestEncode_NoInput(t *testing.T) {
	assert.Empty(t, Encode(nil))
	assert.Empty(t, Encode([]string{""}))
}

func TestEncode_Deterministic(t *testing.T) {
	lines := []string{"  %%%@@ ", "%%%%"}
	assert.Equal(t, Encode(lines), Encode(lines))
}

func TestParseEmptyLinePolicy(t *testing.T) {
	p, err := ParseEmptyLinePolicy("preserve")
	require.NoError(t, err)
	assert.Equal(t, EmptyLinesPreserve, p)

	p, err = ParseEmptyLinePolicy("")
	require.NoError(t, err)
	assert.Equal(t, EmptyLinesCollapse, p)

	_, err = ParseEmptyLinePolicy("keep")
	assert.Error(t, err)

	assert.Equal(t, "collapse", EmptyLinesCollapse.String())
	assert.Equal(t, "preserve", EmptyLinesPreserve.String())
}
