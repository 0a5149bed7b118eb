package state

import (
	"context"

	"github.com/jfmyers9/spotbar/internal/spotify"
	"github.com/rs/zerolog"
)

// Literal fallbacks used when an individual metadata lookup fails. No
// raw error text ever reaches the display.
const (
	UnknownTrack  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
)

// ArtworkFetcher retrieves image bytes for an artwork URL. A nil result
// means no artwork; fetch failures never affect the state kind.
type ArtworkFetcher interface {
	Fetch(ctx context.Context, rawURL string) []byte
}

// Reconciler turns raw bridge responses into one canonical PlaybackState
// per cycle. It is the only component that decides what the displayed
// state should be given partial or ambiguous information.
type Reconciler struct {
	bridge  spotify.Bridge
	running func(ctx context.Context) bool
	artwork ArtworkFetcher
	logger  zerolog.Logger
}

// NewReconciler creates a Reconciler. artwork may be nil to disable
// artwork fetching entirely.
func NewReconciler(bridge spotify.Bridge, running func(ctx context.Context) bool, artwork ArtworkFetcher, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		bridge:  bridge,
		running: running,
		artwork: artwork,
		logger:  logger.With().Str("component", "reconciler").Logger(),
	}
}

// Poll derives a fresh PlaybackState, short-circuiting at the first
// decisive signal:
//
//  1. Spotify not in the process table → NotRunning, no scripted calls.
//  2. GetPlayerState denied → PermissionDenied, no further commands this
//     cycle. A denied consent is structural, so issuing the remaining
//     commands would only spam permission prompts.
//  3. Any other GetPlayerState failure, or an unrecognized value →
//     Stopped.
//  4. Playing/paused → fetch track, artist and artwork with independent
//     fallbacks; none of these can abort the cycle.
func (r *Reconciler) Poll(ctx context.Context) PlaybackState {
	if !r.running(ctx) {
		return PlaybackState{Kind: NotRunning}
	}

	raw, err := r.bridge.Execute(ctx, spotify.GetPlayerState)
	if err != nil {
		if spotify.IsPermissionDenied(err) {
			return PlaybackState{Kind: PermissionDenied}
		}
		r.logger.Debug().Err(err).Msg("Player state query failed")
		return PlaybackState{Kind: Stopped}
	}

	var kind Kind
	switch raw {
	case "playing":
		kind = Playing
	case "paused":
		kind = Paused
	default:
		// Unrecognized vocabulary is a cosmetic mismatch, not an error.
		return PlaybackState{Kind: Stopped}
	}

	st := PlaybackState{
		Kind:       kind,
		TrackName:  r.query(ctx, spotify.GetTrackName, UnknownTrack),
		ArtistName: r.query(ctx, spotify.GetArtistName, UnknownArtist),
	}

	if r.artwork != nil {
		if url, err := r.bridge.Execute(ctx, spotify.GetArtworkURL); err == nil && url != "" {
			st.Artwork = r.artwork.Fetch(ctx, url)
		}
	}

	return st
}

// query runs a metadata lookup, substituting fallback on failure or an
// empty result.
func (r *Reconciler) query(ctx context.Context, cmd spotify.Command, fallback string) string {
	v, err := r.bridge.Execute(ctx, cmd)
	if err != nil || v == "" {
		if err != nil {
			r.logger.Debug().Err(err).Stringer("command", cmd).Msg("Metadata query failed")
		}
		return fallback
	}
	return v
}
