package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"time"

	"fyne.io/systray"
	"github.com/jfmyers9/spotbar/internal/config"
	"github.com/jfmyers9/spotbar/internal/format"
	"github.com/jfmyers9/spotbar/internal/spotify"
	"github.com/jfmyers9/spotbar/internal/state"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	barLogFile  string
	barLogLevel string
)

// barCmd represents the bar command
var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Run the menu-bar companion",
	Long: `Run the menu-bar companion that mirrors Spotify's playback state.

The menu-bar label shows the current track and artist, collapsing to an
icon when the title is too long for the bar. The menu provides
play/pause, next, previous and open-Spotify actions. When Spotify is not
running, or automation consent has not been granted, the label reflects
that instead of an error.

The process runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file (useful for launchd).`,
	RunE: runBar,
}

func init() {
	rootCmd.AddCommand(barCmd)

	barCmd.Flags().StringVar(&barLogFile, "log-file", "", "Log file path (default: stderr)")
	barCmd.Flags().StringVar(&barLogLevel, "log-level", "", "Log level (debug, info, warn, error; overrides config)")
}

func runBar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := barLogLevel
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logger := setupLogger(barLogFile, logLevel)

	logger.Info().
		Str("version", version).
		Dur("poll_interval", cfg.PollInterval()).
		Msg("Starting spotbar")

	bridge := spotify.NewBridge()

	var fetcher state.ArtworkFetcher
	if !cfg.DisableArtwork {
		fetcher = state.NewArtworkFetcher()
	}

	store := state.NewStore()
	reconciler := state.NewReconciler(bridge, spotify.Running, fetcher, logger)
	poller := state.NewPoller(reconciler, store, cfg.PollInterval(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// workers covers the poller and render goroutines, the only ones
	// that touch the tray. Both must be fully stopped before
	// systray.Quit so no callback can land on a destroyed tray.
	var workers sync.WaitGroup
	var menu sync.WaitGroup

	onReady := func() {
		systray.SetTitle(format.IdleLabel)
		systray.SetTooltip("SpotBar")

		nowItem := systray.AddMenuItem("Nothing playing", "")
		nowItem.Disable()
		systray.AddSeparator()
		playPauseItem := systray.AddMenuItem("Play / Pause", "Toggle playback")
		nextItem := systray.AddMenuItem("Next", "Skip to the next track")
		prevItem := systray.AddMenuItem("Previous", "Return to the previous track")
		systray.AddSeparator()
		openItem := systray.AddMenuItem("Open Spotify", "Launch or focus Spotify")
		quitItem := systray.AddMenuItem("Quit SpotBar", "")

		updates := store.Subscribe()

		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := poller.Run(ctx); err != nil && err != context.Canceled {
				logger.Error().Err(err).Msg("Poller error")
			}
		}()

		// Render goroutine: sole writer of the tray label. It only reads
		// complete snapshots from the store, never partial state.
		workers.Add(1)
		go func() {
			defer workers.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case st := <-updates:
					renderState(st, cfg.MaxLabelChars, nowItem)
				}
			}
		}()

		// Menu actions. Transport commands are fire-and-forget bridge
		// calls issued directly from the click, never serialized behind
		// the poll cycle; a kick afterwards refreshes the label promptly.
		menu.Add(1)
		go func() {
			defer menu.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-playPauseItem.ClickedCh:
					fireTransport(bridge, spotify.PlayPause, poller, logger)
				case <-nextItem.ClickedCh:
					fireTransport(bridge, spotify.NextTrack, poller, logger)
				case <-prevItem.ClickedCh:
					fireTransport(bridge, spotify.PreviousTrack, poller, logger)
				case <-openItem.ClickedCh:
					go func() {
						openCtx, openCancel := context.WithTimeout(context.Background(), 5*time.Second)
						defer openCancel()
						if err := spotify.Open(openCtx, bridge); err != nil {
							logger.Warn().Err(err).Msg("Failed to open Spotify")
						}
					}()
				case <-quitItem.ClickedCh:
					// Stop the poller and render loop first: a publish
					// arriving after Quit would land on a destroyed tray.
					cancel()
					workers.Wait()
					systray.Quit()
					return
				}
			}
		}()
	}

	onExit := func() {
		logger.Info().Msg("Menu bar teardown")
	}

	// Blocks until Quit. The quit handler stops and drains the workers
	// before the tray resources go away; this covers the case where the
	// native loop ends for another reason.
	systray.Run(onReady, onExit)

	cancel()
	workers.Wait()
	menu.Wait()

	logger.Info().Msg("spotbar stopped")
	return nil
}

// placeholderIcon replaces the menu icon when the current snapshot has
// no artwork, so a previous track's cover never lingers.
var placeholderIcon = func() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	return buf.Bytes()
}()

// menuIcon returns the icon bytes for the now-playing menu item.
func menuIcon(st state.PlaybackState) []byte {
	if st.HasTrack() && len(st.Artwork) > 0 {
		return st.Artwork
	}
	return placeholderIcon
}

// renderState applies one published snapshot to the tray.
func renderState(st state.PlaybackState, maxChars int, nowItem *systray.MenuItem) {
	if format.ShouldUseIconOnly(st) {
		// Long titles collapse to the icon label; the tooltip keeps the
		// full text, so nothing destabilizes the menu-bar width.
		systray.SetTitle(format.IdleLabel)
	} else {
		systray.SetTitle(format.CompactLabel(st, maxChars))
	}
	systray.SetTooltip(format.DetailText(st))

	if st.HasTrack() {
		nowItem.SetTitle(format.FullLabel(st))
	} else {
		nowItem.SetTitle("Nothing playing")
	}
	nowItem.SetIcon(menuIcon(st))
}

func fireTransport(bridge spotify.Bridge, command spotify.Command, poller *state.Poller, logger zerolog.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := bridge.Execute(ctx, command); err != nil {
			logger.Warn().Err(err).Stringer("command", command).Msg("Transport command failed")
			return
		}
		poller.Kick()
	}()
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
