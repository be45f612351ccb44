//go:build !darwin

package permissions

// Accessibility trust only exists on macOS; elsewhere the answer is no.
type platformAuthorizer struct{}

func (platformAuthorizer) IsTrusted() bool { return false }

func (platformAuthorizer) PromptForTrust() {}
