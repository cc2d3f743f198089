package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const headerTitle = " cardtray "

// Tab is one frame entry in the header
type Tab struct {
	ID     string
	Title  string
	Active bool
}

// tabSpan is the half-open column range a tab occupies
type tabSpan struct {
	id         string
	start, end int
}

// Header represents the top header bar with one tab per frame
type Header struct {
	width  int
	tabs   []Tab
	status string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTabs sets the frame tabs in display order
func (h *Header) SetTabs(tabs []Tab) {
	h.tabs = tabs
}

// SetStatus sets the right-aligned status text (e.g. a loading notice)
func (h *Header) SetStatus(status string) {
	h.status = status
}

func tabLabel(i int, t Tab) string {
	return fmt.Sprintf("%d %s", i+1, t.Title)
}

// spans lays the tabs out after the title. Each tab is padded by one cell
// on either side, matching HeaderTabStyle.
func (h *Header) spans() []tabSpan {
	x := ansi.StringWidth(headerTitle)
	spans := make([]tabSpan, len(h.tabs))
	for i, t := range h.tabs {
		w := ansi.StringWidth(tabLabel(i, t)) + 2
		spans[i] = tabSpan{id: t.ID, start: x, end: x + w}
		x += w
	}
	return spans
}

// TabAt returns the frame ID of the tab under column x.
func (h *Header) TabAt(x int) (string, bool) {
	for _, s := range h.spans() {
		if x >= s.start && x < s.end {
			return s.id, true
		}
	}
	return "", false
}

// View renders the header
func (h *Header) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Padding(0).Render(headerTitle))

	used := ansi.StringWidth(headerTitle)
	for i, t := range h.tabs {
		style := HeaderTabStyle
		if t.Active {
			style = HeaderActiveTabStyle
		}
		label := tabLabel(i, t)
		b.WriteString(style.Render(label))
		used += ansi.StringWidth(label) + 2
	}

	status := ""
	if h.status != "" {
		status = h.status + " "
	}
	paddingLen := h.width - used - ansi.StringWidth(status)
	if paddingLen < 0 {
		paddingLen = 0
	}

	b.WriteString(h.renderGradient(strings.Repeat(" ", paddingLen) + status))
	return ansi.Truncate(b.String(), max(h.width, 0), "")
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the filler with a background fading from the
// primary color into the main background.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))
		style := lipgloss.NewStyle().
			Background(bgColor).
			Foreground(textColor)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
