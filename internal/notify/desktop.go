package notify

import (
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows messages as desktop notifications and can play an
// alert tone for messages that mean the tool stopped working.
type DesktopNotifier struct {
	Beep   bool
	Logger *slog.Logger

	notify func(title, message string, icon any) error
	beep   func(freq float64, duration int) error
}

// NewDesktop returns a DesktopNotifier backed by beeep.
func NewDesktop(withBeep bool, logger *slog.Logger) *DesktopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DesktopNotifier{
		Beep:   withBeep,
		Logger: logger,
		notify: func(title, message string, icon any) error {
			return beeep.Notify(title, message, icon)
		},
		beep: beeep.Beep,
	}
}

func (d *DesktopNotifier) Notify(message string) {
	if d.Beep && isAlarming(message) {
		d.playAlert()
	}
	if err := d.notify(AppName, message, ""); err != nil {
		d.Logger.Warn("[NOTIFY] desktop notification failed", "error", err)
	}
}

func (d *DesktopNotifier) playAlert() {
	if err := d.beep(beeep.DefaultFreq, beeep.DefaultDuration/2); err != nil {
		// Fallback to the system alert sound.
		if runtime.GOOS == "darwin" {
			_ = exec.Command("osascript", "-e", "beep 1").Run()
			return
		}
		d.Logger.Debug("[NOTIFY] beep failed", "error", err)
	}
}

func isAlarming(message string) bool {
	switch message {
	case PermissionLost, TapFailed, PermissionRequired:
		return true
	default:
		return false
	}
}
