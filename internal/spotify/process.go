package spotify

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Running reports whether Spotify is currently in the process table.
// It queries the launch-services registry by bundle id so the check
// works even when automation consent has not been granted. A missing
// lsappinfo binary falls back to a pgrep match on the executable name.
func Running(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "lsappinfo", "find", "bundleid="+BundleID).Output()
	if err == nil {
		return strings.TrimSpace(string(out)) != ""
	}
	if errors.Is(err, exec.ErrNotFound) {
		return exec.CommandContext(ctx, "pgrep", "-x", ProcessName).Run() == nil
	}
	return false
}

// Open launches Spotify or brings it to the foreground. The direct
// launch API is preferred; the Activate script command is the fallback
// when the app cannot be resolved by bundle id.
func Open(ctx context.Context, bridge Bridge) error {
	if err := exec.CommandContext(ctx, "open", "-b", BundleID).Run(); err == nil {
		return nil
	}
	_, err := bridge.Execute(ctx, Activate)
	return err
}
