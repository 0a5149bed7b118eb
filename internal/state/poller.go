package state

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the polling cadence when none is configured.
const DefaultInterval = 1500 * time.Millisecond

// Source produces one PlaybackState per poll. Implemented by Reconciler.
type Source interface {
	Poll(ctx context.Context) PlaybackState
}

// Poller drives the reconciler on a fixed cadence and publishes each
// result to the store. An in-flight guard ensures a new cycle never
// starts while a previous one is outstanding, regardless of how Kick
// and the ticker interleave.
type Poller struct {
	source   Source
	store    *Store
	interval time.Duration
	kick     chan struct{}
	inFlight atomic.Bool
	logger   zerolog.Logger
}

// NewPoller creates a Poller. A non-positive interval falls back to
// DefaultInterval.
func NewPoller(source Source, store *Store, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		store:    store,
		interval: interval,
		kick:     make(chan struct{}, 1),
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Run polls immediately, then on every tick or kick, until the context
// is cancelled. The immediate first poll means the UI never shows an
// uninitialized state for the first interval.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.pollOnce(ctx)
		case <-p.kick:
			p.pollOnce(ctx)
		}
	}
}

// Kick requests an immediate poll, e.g. right after a transport action.
// Non-blocking; coalesces with a pending request.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer p.inFlight.Store(false)

	st := p.source.Poll(ctx)
	p.store.Publish(st)

	p.logger.Debug().
		Stringer("kind", st.Kind).
		Str("track", st.TrackName).
		Str("artist", st.ArtistName).
		Msg("Poll update")
}
