package state

import "sync"

// Kind is the canonical playback condition shown to the user.
type Kind int

const (
	NotRunning Kind = iota // Spotify process is absent
	PermissionDenied       // automation consent missing
	Stopped                // running but nothing playing
	Playing
	Paused
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case NotRunning:
		return "not running"
	case PermissionDenied:
		return "permission denied"
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaybackState is an immutable snapshot of what should currently be
// displayed. It is rebuilt wholesale every poll cycle; track, artist and
// artwork are only populated when a track is active.
type PlaybackState struct {
	Kind       Kind
	TrackName  string
	ArtistName string
	Artwork    []byte // optional; absence is never an error
}

// HasTrack reports whether the state carries track metadata.
func (s PlaybackState) HasTrack() bool {
	return s.Kind == Playing || s.Kind == Paused
}

// Store holds the single current PlaybackState. There is exactly one
// writer (the poller) and any number of readers; Publish replaces the
// snapshot wholesale so readers never observe a half-updated state.
type Store struct {
	mu      sync.RWMutex
	current PlaybackState
	subs    []chan PlaybackState
}

// NewStore creates an empty store. Until the first Publish, Current
// returns a NotRunning snapshot.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current state and notifies subscribers. Slow
// subscribers are never blocked on: a pending unread snapshot is
// replaced by the newer one.
func (s *Store) Publish(st PlaybackState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = st
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// Current returns the latest published state.
func (s *Store) Current() PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe returns a channel that receives the latest state after each
// publish. Delivery is coalescing: only the most recent snapshot is
// retained for a reader that falls behind.
func (s *Store) Subscribe() <-chan PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan PlaybackState, 1)
	s.subs = append(s.subs, ch)
	return ch
}
