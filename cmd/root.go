/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotbar",
	Short: "Menu-bar companion for Spotify",
	Long: `spotbar mirrors Spotify's playback state in the macOS menu bar and
provides transport controls without switching focus.

It polls Spotify over AppleScript, reconciles the responses into a single
display state, and renders it as a menu-bar label with a tooltip and
play/pause/next/previous menu actions.

It also provides one-shot CLI commands to print the current track or
issue transport controls, useful for scripts and status bars.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
