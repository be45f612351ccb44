package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrTapCreate is returned when the OS refuses to create the event tap.
var ErrTapCreate = errors.New("failed to create event tap")

// PipelineState is the lifecycle of the interception pipeline.
type PipelineState int

const (
	Stopped PipelineState = iota
	Starting
	Running
)

func (s PipelineState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// HookFactory creates a fresh, unstarted Hook.
type HookFactory func() Hook

// Manager owns the single live Hook and routes its events into a Combo.
type Manager struct {
	combo    *Combo
	newHook  HookFactory
	logger   *slog.Logger
	disabled chan DisableReason

	mu    sync.Mutex
	hook  Hook
	state PipelineState
}

// NewManager wires combo to hooks produced by newHook.
func NewManager(combo *Combo, newHook HookFactory, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		combo:    combo,
		newHook:  newHook,
		logger:   logger,
		disabled: make(chan DisableReason, 1),
	}
}

// Start replaces any running hook with a new one.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	select {
	case reason := <-m.disabled:
		m.logger.Debug("[TAP] dropping disable notice from previous tap", "reason", reason.String())
	default:
	}
	m.combo.Reset()
	m.state = Starting

	hook := m.newHook()
	if err := hook.Start(m); err != nil {
		m.state = Stopped
		if !errors.Is(err, ErrTapCreate) {
			err = fmt.Errorf("%w: %v", ErrTapCreate, err)
		}
		m.logger.Error("[TAP] start failed", "error", err)
		return err
	}

	m.hook = hook
	m.state = Running
	m.logger.Info("[TAP] event tap running")
	return nil
}

// Stop removes the running hook. It is a no-op when nothing is running.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.hook == nil {
		m.state = Stopped
		return
	}
	m.hook.Stop()
	m.hook = nil
	m.combo.Reset()
	m.state = Stopped
	m.logger.Info("[TAP] event tap stopped")
}

// State reports the pipeline lifecycle state.
func (m *Manager) State() PipelineState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Disabled delivers forced-disable notices from the OS. Notices that arrive
// while one is already pending are coalesced.
func (m *Manager) Disabled() <-chan DisableReason {
	return m.disabled
}

// HandleEvent implements Sink. It never takes m.mu; Stop may be holding it
// while waiting for this callback's thread to exit.
func (m *Manager) HandleEvent(ev Event) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("[TAP] panic in event handler, passing event through",
				"panic", r, "event", ev.Kind.String(), "keycode", int(ev.Keycode), "stack", string(debug.Stack()))
			verdict = Pass
		}
	}()
	return m.combo.Handle(ev)
}

// HookDisabled implements Sink.
func (m *Manager) HookDisabled(reason DisableReason) {
	m.logger.Warn("[TAP] event tap disabled by the system", "reason", reason.String())
	select {
	case m.disabled <- reason:
	default:
	}
}
