package pip

import "errors"

// Sentinel errors for invalid lifecycle operations. These are reported as
// warnings through the error pipeline; they never stop the process.
var (
	// ErrNoSession indicates the controller has no floating-surface session.
	ErrNoSession = errors.New("pip: no floating-surface session")

	// ErrAlreadyActive indicates Start was called while a session is
	// already starting or active.
	ErrAlreadyActive = errors.New("pip: floating surface already active")

	// ErrNotActive indicates Stop was called on an idle controller.
	ErrNotActive = errors.New("pip: floating surface not active")
)
