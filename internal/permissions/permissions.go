// Package permissions reports and requests the Accessibility trust that the
// keyboard event tap depends on.
package permissions

import (
	"os"
	"strings"
)

// State is the process-wide authorization state.
type State int32

const (
	// StateUnknown means no sample has been taken yet, or a transition is in flight.
	StateUnknown State = iota
	// StateGranted means the process is trusted for Accessibility.
	StateGranted
	// StateDenied means the process is not trusted.
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Authorizer queries and requests Accessibility trust.
type Authorizer interface {
	IsTrusted() bool
	// PromptForTrust asks the OS to show its approval UI. It does not wait.
	PromptForTrust()
}

// OverrideEnv forces the trust answer, for testing without TCC changes.
const OverrideEnv = "MOUSEJUMP_ACCESSIBILITY"

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// ProbeResult is a human-readable trust report.
type ProbeResult struct {
	State    State
	Message  string
	Guidance string
}

// Probe reports the current trust state of a.
func Probe(a Authorizer) ProbeResult {
	if a.IsTrusted() {
		return ProbeResult{State: StateGranted, Message: "accessibility permission granted"}
	}
	return ProbeResult{
		State:    StateDenied,
		Message:  "accessibility permission missing",
		Guidance: "open System Settings > Privacy & Security > Accessibility and enable mousejump",
	}
}

// System returns the platform Authorizer; env is consulted for OverrideEnv
// on every query. A nil env uses os.LookupEnv.
func System(env LookupEnvFunc) Authorizer {
	if env == nil {
		env = os.LookupEnv
	}
	return &overrideAuthorizer{env: env, next: platformAuthorizer{}}
}

type overrideAuthorizer struct {
	env  LookupEnvFunc
	next Authorizer
}

func (o *overrideAuthorizer) IsTrusted() bool {
	if v, ok := o.env(OverrideEnv); ok {
		if trusted, known := interpretOverride(v); known {
			return trusted
		}
	}
	return o.next.IsTrusted()
}

func (o *overrideAuthorizer) PromptForTrust() {
	if _, ok := o.env(OverrideEnv); ok {
		return
	}
	o.next.PromptForTrust()
}

func interpretOverride(value string) (trusted bool, known bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "granted", "allow", "allowed", "yes", "true":
		return true, true
	case "denied", "no", "false", "blocked":
		return false, true
	default:
		return false, false
	}
}
