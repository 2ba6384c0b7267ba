package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"short line no wrap", "hello world", 80, "hello world"},
		{"wrap at width", "hello world test", 10, "hello\nworld test"},
		{"preserves newlines", "line1\nline2", 80, "line1\nline2"},
		{"keeps blank lines", "a\n\nb", 80, "a\n\nb"},
		{"empty string", "", 80, ""},
		{"width zero returns input", "test", 0, "test"},
		{"long word exceeds width", "superlongword short", 5, "superlongword\nshort"},
		{"colored words measured without escapes", "\x1b[31mred\x1b[0m blue", 8, "\x1b[31mred\x1b[0m blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WordWrap(tt.input, tt.width))
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"plain text", "hello", 5},
		{"with ANSI color", "\x1b[31mred\x1b[0m", 3},
		{"empty", "", 0},
		{"only ANSI", "\x1b[31m\x1b[0m", 0},
		{"multibyte", "héllo", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, visibleLength(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"counts runes not bytes", "ñandú-über", 7, "ñand..."},
		{"min length enforced", "hello", 2, "h..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRunes(tt.input, tt.n))
		})
	}
}
