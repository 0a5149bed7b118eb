package spotify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Bridge executes a single scripting command against Spotify and returns
// its scalar result, if any. Implementations must not retry, log to UI,
// or touch shared state; interpreting results belongs to the caller.
type Bridge interface {
	Execute(ctx context.Context, cmd Command) (string, error)
}

// BridgeError is returned when a script fails to execute. Denied marks
// the automation-consent failure, which callers treat differently from
// every other script error.
type BridgeError struct {
	Cmd    Command
	Denied bool
	Stderr string
	Err    error
}

func (e *BridgeError) Error() string {
	if e.Denied {
		return fmt.Sprintf("%s: automation permission denied", e.Cmd)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: osascript error: %s", e.Cmd, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// IsPermissionDenied reports whether err is a bridge failure caused by
// the host denying the Apple events call.
func IsPermissionDenied(err error) bool {
	var be *BridgeError
	return errors.As(err, &be) && be.Denied
}

// runner executes a script and returns its stdout. Separated so tests can
// substitute a fake subprocess.
type runner func(ctx context.Context, script string) ([]byte, error)

func osascriptRunner(ctx context.Context, script string) ([]byte, error) {
	return exec.CommandContext(ctx, "osascript", "-e", script).Output()
}

// OsascriptBridge sends commands to Spotify via the osascript utility.
type OsascriptBridge struct {
	run runner
}

// NewBridge creates a Bridge backed by osascript.
func NewBridge() *OsascriptBridge {
	return &OsascriptBridge{run: osascriptRunner}
}

// Execute runs the script for cmd. Commands without a return value yield
// an empty string on success.
func (b *OsascriptBridge) Execute(ctx context.Context, cmd Command) (string, error) {
	out, err := b.run(ctx, cmd.Script())
	if err != nil {
		return "", classify(cmd, err)
	}
	if !cmd.ReturnsValue() {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// Apple events to an app the user has not consented to automate fail
// with errAEEventNotPermitted.
const notPermittedCode = "-1743"

func classify(cmd Command, err error) *BridgeError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		denied := strings.Contains(stderr, notPermittedCode) ||
			strings.Contains(stderr, "Not authorized to send Apple events")
		return &BridgeError{Cmd: cmd, Denied: denied, Stderr: stderr, Err: err}
	}
	return &BridgeError{Cmd: cmd, Err: err}
}
