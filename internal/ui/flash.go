package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FlashType selects the icon and color of a footer flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash stays visible
const DefaultFlashDuration = 4 * time.Second

// flashTickInterval is how often expiry is checked
const flashTickInterval = 500 * time.Millisecond

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg time.Time

// FlashMessage is a transient message shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// icon returns the prefix shown before the flash text
func (t FlashType) icon() string {
	switch t {
	case FlashSuccess:
		return "✓"
	case FlashWarning:
		return "⚠"
	case FlashError:
		return "✕"
	default:
		return "ℹ"
	}
}

// style returns the style the flash is rendered with
func (t FlashType) style() func(...string) string {
	switch t {
	case FlashSuccess:
		return FlashSuccessStyle.Render
	case FlashWarning:
		return FlashWarningStyle.Render
	case FlashError:
		return FlashErrorStyle.Render
	default:
		return FlashInfoStyle.Render
	}
}

// FlashTick returns a command that sends a flash tick after a delay
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}
