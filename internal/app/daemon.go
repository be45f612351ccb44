package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fruitjuice088/mousejump/internal/config"
	"github.com/fruitjuice088/mousejump/internal/cursor"
	"github.com/fruitjuice088/mousejump/internal/geometry"
	"github.com/fruitjuice088/mousejump/internal/hotkeys"
	"github.com/fruitjuice088/mousejump/internal/logging"
	"github.com/fruitjuice088/mousejump/internal/notify"
	"github.com/fruitjuice088/mousejump/internal/permissions"
	"github.com/fruitjuice088/mousejump/internal/supervisor"
	"github.com/fruitjuice088/mousejump/internal/window"
)

// Options overrides the collaborators a Daemon builds for itself.
// Zero fields get the system implementation.
type Options struct {
	Config     config.Config
	Logger     *slog.Logger
	Authorizer permissions.Authorizer
	Locator    window.Locator
	Actuator   cursor.Actuator
	Hooks      hotkeys.HookFactory
	Notifier   notify.Notifier
	Out        io.Writer
}

type Daemon struct {
	opts   Options
	config config.Config
	logger *slog.Logger
	out    io.Writer

	combo      *hotkeys.Combo
	manager    *hotkeys.Manager
	supervisor *supervisor.Supervisor
}

func NewDaemon(opts Options) *Daemon {
	return &Daemon{opts: opts}
}

func (d *Daemon) Initialize() error {
	d.config = d.opts.Config
	if d.config == (config.Config{}) {
		d.config = config.Default()
	}
	if err := d.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	d.logger = d.opts.Logger
	if d.logger == nil {
		logger, err := logging.New(logging.Options{Level: d.config.LogLevel, Format: d.config.LogFormat})
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		d.logger = logger
	}

	d.out = d.opts.Out
	if d.out == nil {
		d.out = os.Stdout
	}

	notifier := d.opts.Notifier
	if notifier == nil {
		sinks := notify.Multi{notify.LogNotifier{Logger: d.logger}}
		if d.config.DesktopNotifications {
			sinks = append(sinks, notify.NewDesktop(d.config.Beep, d.logger))
		}
		notifier = sinks
	}

	auth := d.opts.Authorizer
	if auth == nil {
		auth = permissions.System(os.LookupEnv)
	}
	locator := d.opts.Locator
	if locator == nil {
		locator = window.NewSystem()
	}
	actuator := d.opts.Actuator
	if actuator == nil {
		actuator = cursor.NewSystem(d.logger)
	}
	hooks := d.opts.Hooks
	if hooks == nil {
		if !hotkeys.Supported {
			d.logger.Warn("[TAP] keyboard interception is only available on macOS")
		}
		hooks = hotkeys.SystemHookFactory(d.logger)
	}

	var err error
	d.combo, err = hotkeys.NewCombo(hotkeys.ComboOptions{
		Debounce: d.config.Debounce(),
		Locator:  locator,
		Actuator: actuator,
		Logger:   d.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build key combination handler: %w", err)
	}

	d.manager = hotkeys.NewManager(d.combo, hooks, d.logger)

	d.supervisor, err = supervisor.New(supervisor.Options{
		Authorizer:   auth,
		Pipeline:     d.manager,
		Notifier:     notifier,
		Logger:       d.logger,
		PollInterval: d.config.PollInterval(),
	})
	if err != nil {
		return fmt.Errorf("failed to build permission supervisor: %w", err)
	}

	d.logger.Debug("daemon initialized",
		"debounce", d.config.Debounce(),
		"poll_interval", d.config.PollInterval(),
		"desktop_notifications", d.config.DesktopNotifications,
		"config", d.config.Source)
	return nil
}

// Run blocks until ctx is done, SIGINT or SIGTERM arrives, or the event tap
// cannot be created.
func (d *Daemon) Run(ctx context.Context) error {
	if d.supervisor == nil {
		return errors.New("daemon is not initialized")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(d.out, "🖱️  MouseJump Started")
	fmt.Fprintf(d.out, "📋 Hold Option and press %s to jump the cursor\n", bindingsHelp())
	fmt.Fprintln(d.out, "📋 Tap or hold Option alone to center it in the front window")
	fmt.Fprintln(d.out, "🛑 Press Ctrl+C to exit")
	fmt.Fprintln(d.out)

	err := d.supervisor.Run(ctx)
	d.Cleanup()
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, "\n🛑 Shutting down...")
	return nil
}

func (d *Daemon) Cleanup() {
	if d.manager != nil {
		d.manager.Stop()
	}
}

// Permission exposes the supervisor's current authorization state.
func (d *Daemon) Permission() permissions.State {
	if d.supervisor == nil {
		return permissions.StateUnknown
	}
	return d.supervisor.State()
}

func bindingsHelp() string {
	keys := []struct {
		name string
		code geometry.Keycode
	}{
		{"W", geometry.KeyW}, {"E", geometry.KeyE}, {"R", geometry.KeyR},
		{"S", geometry.KeyS}, {"D", geometry.KeyD}, {"F", geometry.KeyF},
	}
	help := ""
	for i, k := range keys {
		l, _ := geometry.Lookup(k.code)
		if i > 0 {
			help += ", "
		}
		help += fmt.Sprintf("%s (%s)", k.name, l)
	}
	return help
}
