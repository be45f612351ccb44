//go:build !darwin

package hotkeys

import (
	"fmt"
	"log/slog"
)

// Supported reports whether this platform has a real event tap.
const Supported = false

type unsupportedTap struct{}

// SystemHookFactory returns a factory whose hooks always fail to start.
func SystemHookFactory(_ *slog.Logger) HookFactory {
	return func() Hook {
		return unsupportedTap{}
	}
}

func (unsupportedTap) Start(Sink) error {
	return fmt.Errorf("%w: keyboard event taps require macOS", ErrTapCreate)
}

func (unsupportedTap) Stop() {}
