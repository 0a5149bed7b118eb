package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PublishReplacesWholesale(t *testing.T) {
	s := NewStore()

	s.Publish(PlaybackState{Kind: Playing, TrackName: "Two", ArtistName: "Disclosure"})
	s.Publish(PlaybackState{Kind: Stopped})

	got := s.Current()
	assert.Equal(t, Stopped, got.Kind)
	assert.Empty(t, got.TrackName)
	assert.Empty(t, got.ArtistName)
	assert.Nil(t, got.Artwork)
}

func TestStore_SubscribeReceivesPublishes(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	want := PlaybackState{Kind: Paused, TrackName: "Two", ArtistName: "Disclosure"}
	s.Publish(want)

	select {
	case got := <-ch:
		assert.Equal(t, want, got)
	default:
		t.Fatal("expected a buffered snapshot after publish")
	}
}

func TestStore_SlowSubscriberGetsLatestOnly(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	s.Publish(PlaybackState{Kind: Playing, TrackName: "First"})
	s.Publish(PlaybackState{Kind: Playing, TrackName: "Second"})
	s.Publish(PlaybackState{Kind: Playing, TrackName: "Third"})

	select {
	case got := <-ch:
		assert.Equal(t, "Third", got.TrackName)
	default:
		t.Fatal("expected a buffered snapshot after publish")
	}

	// Nothing stale left behind
	select {
	case got := <-ch:
		t.Fatalf("unexpected extra snapshot: %+v", got)
	default:
	}
}

func TestStore_CurrentBeforeFirstPublish(t *testing.T) {
	s := NewStore()
	require.Equal(t, NotRunning, s.Current().Kind)
}

func TestPlaybackState_HasTrack(t *testing.T) {
	assert.True(t, PlaybackState{Kind: Playing}.HasTrack())
	assert.True(t, PlaybackState{Kind: Paused}.HasTrack())
	assert.False(t, PlaybackState{Kind: Stopped}.HasTrack())
	assert.False(t, PlaybackState{Kind: NotRunning}.HasTrack())
	assert.False(t, PlaybackState{Kind: PermissionDenied}.HasTrack())
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{NotRunning, "not running"},
		{PermissionDenied, "permission denied"},
		{Stopped, "stopped"},
		{Playing, "playing"},
		{Paused, "paused"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
