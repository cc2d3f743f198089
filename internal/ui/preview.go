package ui

import (
	"bytes"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Preview is a scrollable overlay showing what an export would write
type Preview struct {
	viewport viewport.Model
	title    string
	visible  bool
}

// NewPreview creates a hidden preview
func NewPreview() *Preview {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &Preview{viewport: vp}
}

// SetSize fits the overlay inside a terminal of the given size
func (p *Preview) SetSize(termWidth, termHeight int) {
	w := min(PreviewWidth, termWidth-4)
	h := min(PreviewHeight, termHeight-4)
	// Border, padding and the title and help lines
	p.viewport.SetWidth(max(w-4, 1))
	p.viewport.SetHeight(max(h-4, 1))
}

// Show opens the overlay with content highlighted as language
func (p *Preview) Show(title, content, language string) {
	p.title = title
	p.viewport.SetContent(highlightCode(content, language))
	p.viewport.GotoTop()
	p.visible = true
}

// Hide closes the overlay
func (p *Preview) Hide() {
	p.visible = false
}

// IsVisible reports whether the overlay is open
func (p *Preview) IsVisible() bool {
	return p.visible
}

// Update forwards scroll keys and wheel events to the viewport
func (p *Preview) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the overlay box
func (p *Preview) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		PreviewTitleStyle.Render(p.title),
		p.viewport.View(),
		PreviewHelpStyle.Render("esc close  ↑/↓ scroll  ctrl+s export"),
	)
	return PreviewStyle.Render(content)
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
