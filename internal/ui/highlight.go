package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter provides syntax highlighting for config text
type Highlighter struct {
	style *chroma.Style
	lexer chroma.Lexer
}

// NewHighlighter creates a highlighter for the given chroma language name.
// An unknown language leaves text unstyled.
func NewHighlighter(language string) *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
		lexer: lexers.Get(language),
	}
}

// NewJSONHighlighter highlights the group config
func NewJSONHighlighter() *Highlighter {
	return NewHighlighter("json")
}

// HighlightLine highlights a single line
func (h *Highlighter) HighlightLine(line string) string {
	if h.lexer == nil {
		return line
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := h.style.Get(token.Type)
		text := token.Value

		if style.Colour.IsSet() {
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Colour.String()))
			if style.Bold == chroma.Yes {
				styled = styled.Bold(true)
			}
			if style.Italic == chroma.Yes {
				styled = styled.Italic(true)
			}
			result.WriteString(styled.Render(text))
		} else {
			result.WriteString(text)
		}
	}

	return result.String()
}

// Highlight highlights multi-line text line by line
func (h *Highlighter) Highlight(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = h.HighlightLine(line)
	}
	return strings.Join(lines, "\n")
}
