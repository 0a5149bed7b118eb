package cmd

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jfmyers9/spotbar/internal/state"
)

func TestMenuIcon_UsesSnapshotArtwork(t *testing.T) {
	st := state.PlaybackState{
		Kind:       state.Playing,
		TrackName:  "Two",
		ArtistName: "Disclosure",
		Artwork:    []byte("cover-bytes"),
	}

	if got := menuIcon(st); !bytes.Equal(got, st.Artwork) {
		t.Errorf("menuIcon() = %q, want the snapshot artwork", got)
	}
}

func TestMenuIcon_ResetsWhenArtworkAbsent(t *testing.T) {
	tests := []struct {
		name string
		st   state.PlaybackState
	}{
		{
			name: "playing without artwork",
			st:   state.PlaybackState{Kind: state.Playing, TrackName: "Two", ArtistName: "Disclosure"},
		},
		{
			name: "stopped",
			st:   state.PlaybackState{Kind: state.Stopped},
		},
		{
			name: "not running",
			st:   state.PlaybackState{Kind: state.NotRunning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := menuIcon(tt.st)
			if !bytes.Equal(got, placeholderIcon) {
				t.Errorf("menuIcon() = %q, want the placeholder so no stale cover lingers", got)
			}
		})
	}
}

func TestPlaceholderIcon_IsValidPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(placeholderIcon))
	if err != nil {
		t.Fatalf("placeholder icon is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("placeholder icon is %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}
