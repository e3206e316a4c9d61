package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// NotificationSender abstracts the platform notification mechanism.
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	return exec.Command("osascript", "-e", script).Run()
}

// Notifier sends desktop notifications for milestones: goal reached,
// simulation stopped. Unsupported platforms fall back to console output.
type Notifier struct {
	sender NotificationSender
}

// NewNotifier creates a Notifier for the current platform.
func NewNotifier() *Notifier {
	var sender NotificationSender
	switch runtime.GOOS {
	case "linux":
		sender = &LinuxNotificationSender{}
	case "darwin":
		sender = &MacOSNotificationSender{}
	}
	return &Notifier{sender: sender}
}

// Notify prints to console and, where supported, raises a desktop
// notification. Notification errors are ignored.
func (n *Notifier) Notify(title, message string) {
	fmt.Printf("\n%s: %s\n", Cyan(title), Yellow(message))
	if n.sender != nil {
		_ = n.sender.Send(title, message)
	}
}

// NotifySuccess is Notify with success coloring on the console.
func (n *Notifier) NotifySuccess(title, message string) {
	fmt.Printf("\n%s: %s\n", Green(title), Green(message))
	if n.sender != nil {
		_ = n.sender.Send(title, message)
	}
}
