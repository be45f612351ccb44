package hotkeys

import "github.com/fruitjuice088/mousejump/internal/geometry"

// EventKind mirrors the three CGEvent types the tap listens for.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	FlagsChanged
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	case FlagsChanged:
		return "flags-changed"
	default:
		return "unknown"
	}
}

// Event is a keyboard event as seen by the tap.
type Event struct {
	Kind    EventKind
	Keycode geometry.Keycode
	// Option reports whether the Option (alternate) flag is set on the event.
	Option bool
}

// Verdict tells the tap what to do with an event.
type Verdict int

const (
	Pass Verdict = iota
	Swallow
)

func (v Verdict) String() string {
	if v == Swallow {
		return "swallow"
	}
	return "pass"
}

// DisableReason says why the OS turned the tap off.
type DisableReason int

const (
	DisabledByTimeout DisableReason = iota + 1
	DisabledByUserInput
)

func (r DisableReason) String() string {
	switch r {
	case DisabledByTimeout:
		return "timeout"
	case DisabledByUserInput:
		return "user-input"
	default:
		return "unknown"
	}
}

// Sink receives events from a running Hook. Both methods are called on the
// hook's thread and must return promptly.
type Sink interface {
	HandleEvent(ev Event) Verdict
	HookDisabled(reason DisableReason)
}

// Hook is one OS-level keyboard interception registration.
type Hook interface {
	// Start installs the hook and returns once it is delivering events.
	Start(sink Sink) error
	// Stop removes the hook and returns after the last callback has finished.
	Stop()
}
