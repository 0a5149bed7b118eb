/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jfmyers9/spotbar/internal/config"
	"github.com/jfmyers9/spotbar/internal/format"
	"github.com/jfmyers9/spotbar/internal/spotify"
	"github.com/jfmyers9/spotbar/internal/state"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Display the current Spotify playback state",
	Long: `Poll Spotify once and print the display label.

By default the compact (length-capped) label is printed. Use --full for
the untruncated label or --detail for the multi-line tooltip text.

Exit codes:
  0 - A track is playing
  1 - Paused, stopped, Spotify not running, or permission missing`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().Bool("full", false, "Print the untruncated label")
	nowCmd.Flags().Bool("detail", false, "Print the multi-line detail text")
	nowCmd.Flags().IntP("max-chars", "m", 0, "Compact label cap in characters (overrides config)")
	// Fixed output width for status-bar embedding
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width in display columns (0=disabled)")
}

func runNow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	maxChars, _ := cmd.Flags().GetInt("max-chars")
	if maxChars == 0 {
		maxChars = cfg.MaxLabelChars
	}

	// Labels never render artwork, so the fetch is skipped entirely.
	rec := state.NewReconciler(spotify.NewBridge(), spotify.Running, nil, zerolog.Nop())
	st := rec.Poll(ctx)

	var output string
	full, _ := cmd.Flags().GetBool("full")
	detail, _ := cmd.Flags().GetBool("detail")
	switch {
	case detail:
		output = format.DetailText(st)
	case full:
		output = format.FullLabel(st)
	default:
		output = format.CompactLabel(st, maxChars)
	}

	if width, _ := cmd.Flags().GetInt("width"); width > 0 {
		output = padToWidth(output, width)
	}

	fmt.Println(output)

	if st.Kind != state.Playing {
		os.Exit(1)
	}
	return nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text // no padding requested
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Ensure we're exactly at the target width (in case truncate was imprecise)
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text // exactly the right width
}
