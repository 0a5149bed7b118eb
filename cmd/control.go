package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/spotbar/internal/spotify"
	"github.com/spf13/cobra"
)

// playpauseCmd represents the playpause command
var playpauseCmd = &cobra.Command{
	Use:   "playpause",
	Short: "Toggle play/pause in Spotify",
	Long:  `Toggle between play and pause states in Spotify. If playing, pauses. If paused, resumes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransport(spotify.PlayPause)
	},
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track in Spotify",
	Long:  `Skip to the next track in Spotify's current playlist or queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransport(spotify.NextTrack)
	},
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track in Spotify",
	Long:  `Return to the previous track in Spotify's current playlist or queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransport(spotify.PreviousTrack)
	},
}

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Launch or focus Spotify",
	Long: `Launch Spotify if it is not running, or bring its window to the front.

The direct launch API is tried first; if the app cannot be resolved by
bundle id, the AppleScript activate command is used instead.`,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(playpauseCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(openCmd)
}

func runTransport(command spotify.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := spotify.NewBridge().Execute(ctx, command); err != nil {
		return fmt.Errorf("failed to %s: %w", command, err)
	}
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := spotify.Open(ctx, spotify.NewBridge()); err != nil {
		return fmt.Errorf("failed to open Spotify: %w", err)
	}
	return nil
}
