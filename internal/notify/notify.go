// Package notify delivers user-facing messages about the tap lifecycle.
package notify

import (
	"log/slog"
	"sync"
)

// AppName is the title used for desktop notifications.
const AppName = "MouseJump"

// Messages emitted by the permission supervisor.
const (
	PermissionRequired = "Please allow " + AppName + " in Accessibility settings."
	TapFailed          = "Failed to create event tap."
	PermissionRestored = "Accessibility permission restored."
	PermissionLost     = "Accessibility permission lost. " + AppName + " is paused."
)

// Notifier receives plain-text messages. Implementations may block briefly;
// they are never called from the event tap thread.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function literal to the Notifier interface.
type NotifierFunc func(message string)

// Notify calls the underlying function.
func (f NotifierFunc) Notify(message string) {
	f(message)
}

// LogNotifier writes every message to a logger at error level.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("[NOTIFY] "+message, "app", AppName)
}

// Multi fans each message out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(message)
		}
	}
}

// Recorder keeps every message it receives.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
