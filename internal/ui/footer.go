package ui

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/cardtray/internal/tray"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings and the tray count
type Footer struct {
	width        int
	bindings     []KeyBinding
	count        tray.Count
	hasCount     bool
	searchMode   bool // Whether the search input has focus
	previewMode  bool // Whether the export preview is open
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "click/enter", Desc: "left tray"},
			{Key: "right-click/x", Desc: "right tray"},
			{Key: "/", Desc: "search"},
			{Key: "tab", Desc: "frame"},
			{Key: "p", Desc: "preview"},
			{Key: "ctrl+s", Desc: "export"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetContext updates the footer's mode for conditional bindings
func (f *Footer) SetContext(searchMode, previewMode bool) {
	f.searchMode = searchMode
	f.previewMode = previewMode
}

// SetCount updates the count shown on the right of the footer
func (f *Footer) SetCount(c tray.Count) {
	f.count = c
	f.hasCount = true
}

// ClearCount hides the count, used while a frame has no catalog
func (f *Footer) ClearCount() {
	f.count = tray.Count{}
	f.hasCount = false
}

// Count returns the last count the footer was given
func (f *Footer) Count() tray.Count {
	return f.count
}

// SetFlash shows a flash message for the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// CountView renders "current/maximum percentage", highlighted once full
func (f *Footer) CountView() string {
	if !f.hasCount {
		return ""
	}
	style := FooterCountStyle
	if f.count.Full() {
		style = FooterFullStyle
	}
	return style.Render(f.count.Label()) + " " + FooterDescStyle.Render(f.count.PercentString())
}

// View renders the footer
func (f *Footer) View() string {
	var left string
	if f.flashMessage != nil {
		render := f.flashMessage.Type.style()
		left = render(f.flashMessage.Type.icon() + " " + f.flashMessage.Text)
	} else {
		left = f.bindingsView()
	}

	right := f.CountView()

	// FooterStyle pads one cell on each side; the count always stays visible
	inner := f.width - 2
	left = ansi.Truncate(left, max(inner-lipgloss.Width(right)-1, 0), "…")
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	content := left + strings.Repeat(" ", gap) + right

	return FooterStyle.Width(f.width).MaxHeight(FooterHeight).Render(content)
}

func (f *Footer) bindingsView() string {
	bindings := f.bindings
	switch {
	case f.previewMode:
		bindings = []KeyBinding{
			{Key: "esc/p", Desc: "close"},
			{Key: "↑/↓", Desc: "scroll"},
			{Key: "ctrl+s", Desc: "export"},
		}
	case f.searchMode:
		bindings = []KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: "enter", Desc: "keep"},
			{Key: "esc", Desc: "clear"},
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	return strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
}
