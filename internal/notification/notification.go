// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/zhubert/cardtray/internal/logger"
)

// notifier is swapped out in tests so no real notification is sent.
var notifier = func(title, message string, icon any) error {
	return beeep.Notify(title, message, icon)
}

var defaultNotifier = notifier

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep as the notification backend.
func ResetNotifier() {
	notifier = defaultNotifier
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// CapacityReached tells the user a frame's trays are full.
func CapacityReached(frameTitle string, count, capacity int) error {
	return Send("cardtray", fmt.Sprintf("%s is full (%d/%d)", frameTitle, count, capacity))
}
