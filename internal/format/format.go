// Package format derives display strings from a PlaybackState. All
// functions are pure and deterministic; no I/O happens here.
package format

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/spotbar/internal/state"
	"github.com/rivo/uniseg"
)

const (
	// IdleLabel is shown when there is nothing to display.
	IdleLabel = "♫ SpotBar"
	// PermissionLabel is shown persistently until the user grants
	// automation consent.
	PermissionLabel = "Spotify: Permission needed"

	pauseMarker = "⏸ "
	ellipsis    = "…"

	// IconOnlyThreshold is the label length, in user-perceived
	// characters, beyond which the menu bar collapses to an icon.
	IconOnlyThreshold = 28
	// DefaultMaxChars is the compact label cap.
	DefaultMaxChars = 24
)

// FullLabel returns the untruncated label for the state.
func FullLabel(s state.PlaybackState) string {
	switch s.Kind {
	case state.Playing:
		return fmt.Sprintf("%s – %s", s.TrackName, s.ArtistName)
	case state.Paused:
		return fmt.Sprintf("%s%s – %s", pauseMarker, s.TrackName, s.ArtistName)
	case state.PermissionDenied:
		return PermissionLabel
	default:
		return IdleLabel
	}
}

// DetailText returns the multi-line tooltip text for the state.
func DetailText(s state.PlaybackState) string {
	switch s.Kind {
	case state.Playing, state.Paused:
		return fmt.Sprintf("State: %s\nTrack: %s\nArtist: %s",
			stateWord(s.Kind), s.TrackName, s.ArtistName)
	case state.NotRunning:
		return "Spotify is not running."
	case state.PermissionDenied:
		return "SpotBar needs permission to control Spotify.\n" +
			"Allow it under System Settings > Privacy & Security > Automation."
	default:
		return "Spotify is not playing."
	}
}

// ShouldUseIconOnly reports whether the label is too long for the menu
// bar and should collapse to an icon, with the full text left to the
// tooltip. The pause marker is stripped before measuring.
func ShouldUseIconOnly(s state.PlaybackState) bool {
	label := strings.TrimPrefix(FullLabel(s), pauseMarker)
	return uniseg.GraphemeClusterCount(label) > IconOnlyThreshold
}

// CompactLabel returns the pause-marker-stripped label truncated to
// maxChars user-perceived characters, with a trailing ellipsis when
// truncation occurred.
func CompactLabel(s state.PlaybackState, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	label := strings.TrimPrefix(FullLabel(s), pauseMarker)
	return Truncate(label, maxChars)
}

// Truncate shortens s to max grapheme clusters, appending a single
// ellipsis if anything was cut. Operating on grapheme clusters rather
// than runes or bytes means a glyph is never split.
func Truncate(s string, max int) string {
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}

func stateWord(k state.Kind) string {
	if k == state.Paused {
		return "Paused"
	}
	return "Playing"
}
