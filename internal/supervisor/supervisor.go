// Package supervisor keeps the keyboard event tap alive exactly while the
// process holds Accessibility trust.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fruitjuice088/mousejump/internal/hotkeys"
	"github.com/fruitjuice088/mousejump/internal/notify"
	"github.com/fruitjuice088/mousejump/internal/permissions"
)

// DefaultPollInterval is how often trust is re-sampled.
const DefaultPollInterval = time.Second

// Pipeline is the interception pipeline as the supervisor drives it.
type Pipeline interface {
	Start() error
	Stop()
	Disabled() <-chan hotkeys.DisableReason
}

// Options configures a Supervisor.
type Options struct {
	Authorizer   permissions.Authorizer
	Pipeline     Pipeline
	Notifier     notify.Notifier
	Logger       *slog.Logger
	PollInterval time.Duration
}

// Supervisor owns the authorization state and is the only caller of
// Pipeline.Start and Pipeline.Stop.
type Supervisor struct {
	auth     permissions.Authorizer
	pipeline Pipeline
	notifier notify.Notifier
	logger   *slog.Logger
	interval time.Duration

	state  atomic.Int32
	starts atomic.Int64
}

// New validates options and constructs a Supervisor.
func New(opts Options) (*Supervisor, error) {
	if opts.Authorizer == nil {
		return nil, errors.New("authorizer is required")
	}
	if opts.Pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if opts.PollInterval < 0 {
		return nil, errors.New("poll interval must not be negative")
	}
	interval := opts.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{Logger: opts.Logger}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		auth:     opts.Authorizer,
		pipeline: opts.Pipeline,
		notifier: notifier,
		logger:   logger,
		interval: interval,
	}, nil
}

// State returns the current authorization state.
func (s *Supervisor) State() permissions.State {
	return permissions.State(s.state.Load())
}

// Starts reports how many times the pipeline was started successfully.
func (s *Supervisor) Starts() int64 {
	return s.starts.Load()
}

func (s *Supervisor) setState(next permissions.State) permissions.State {
	prev := permissions.State(s.state.Swap(int32(next)))
	if prev != next {
		s.logger.Info("[PERMISSION] state changed", "from", prev.String(), "to", next.String())
	}
	return prev
}

// Run bootstraps, then samples trust every poll interval and reacts to
// forced disables until ctx is done. The pipeline is stopped on return.
// A non-nil error means the tap could not be created while trusted.
func (s *Supervisor) Run(ctx context.Context) error {
	defer s.pipeline.Stop()

	if err := s.Bootstrap(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Refresh(); err != nil {
				return err
			}
		case reason := <-s.pipeline.Disabled():
			if err := s.HandleForcedDisable(reason); err != nil {
				return err
			}
		}
	}
}

// Bootstrap takes the first sample. Without trust it asks the OS to prompt
// the user and records Denied.
func (s *Supervisor) Bootstrap() error {
	if s.auth.IsTrusted() {
		return s.transition(permissions.StateGranted)
	}
	s.auth.PromptForTrust()
	s.notifier.Notify(notify.PermissionRequired)
	s.setState(permissions.StateDenied)
	return nil
}

// Refresh samples trust once and applies any transition.
func (s *Supervisor) Refresh() error {
	next := permissions.StateDenied
	if s.auth.IsTrusted() {
		next = permissions.StateGranted
	}
	if next == s.State() {
		return nil
	}
	return s.transition(next)
}

// HandleForcedDisable reacts to the OS turning the tap off. The tap is torn
// down at once and trust is re-sampled to decide whether to restart it.
func (s *Supervisor) HandleForcedDisable(reason hotkeys.DisableReason) error {
	if s.State() != permissions.StateGranted {
		s.pipeline.Stop()
		return nil
	}
	s.logger.Warn("[PERMISSION] event tap was disabled, re-checking trust", "reason", reason.String())
	s.pipeline.Stop()
	s.setState(permissions.StateUnknown)
	return s.Refresh()
}

func (s *Supervisor) transition(next permissions.State) error {
	switch next {
	case permissions.StateGranted:
		s.pipeline.Stop()
		if err := s.pipeline.Start(); err != nil {
			s.notifier.Notify(notify.TapFailed)
			return fmt.Errorf("start event tap: %w", err)
		}
		s.starts.Add(1)
		if prev := s.setState(permissions.StateGranted); prev == permissions.StateDenied {
			s.notifier.Notify(notify.PermissionRestored)
		}
	case permissions.StateDenied:
		s.pipeline.Stop()
		if prev := s.setState(permissions.StateDenied); prev != permissions.StateDenied {
			s.notifier.Notify(notify.PermissionLost)
		}
	}
	return nil
}
