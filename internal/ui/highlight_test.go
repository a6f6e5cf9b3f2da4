package ui

import (
	"strings"
	"testing"
)

func TestHighlighter_HighlightLine(t *testing.T) {
	h := NewJSONHighlighter()

	tests := []string{
		`{`,
		`  "work": ["firefox", "calc"],`,
		`}`,
		``,
	}

	for _, line := range tests {
		result := h.HighlightLine(line)
		if line != "" && result == "" {
			t.Errorf("HighlightLine(%q) returned empty", line)
		}
	}
}

func TestHighlighter_UnknownLanguage(t *testing.T) {
	h := NewHighlighter("definitely-not-a-language")

	line := `{"a": ["b"]}`
	if got := h.HighlightLine(line); got != line {
		t.Errorf("unknown language should leave text unchanged, got %q", got)
	}
}

func TestHighlighter_Highlight_KeepsLines(t *testing.T) {
	h := NewJSONHighlighter()

	text := "{\n  \"a\": [\"b\"]\n}"
	got := h.Highlight(text)
	if strings.Count(got, "\n") != 2 {
		t.Errorf("Highlight should keep line count, got %q", got)
	}
}
