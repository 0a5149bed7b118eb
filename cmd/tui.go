package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/spotbar/internal/config"
	"github.com/jfmyers9/spotbar/internal/format"
	"github.com/jfmyers9/spotbar/internal/spotify"
	"github.com/jfmyers9/spotbar/internal/state"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Display a terminal UI for the current playback state",
	Long: `Display a terminal-based user interface showing Spotify's playback
state with real-time updates.

The TUI shows the same state the menu bar would: track and artist while
playing or paused, and an explanatory message when Spotify is stopped,
not running, or missing automation consent.

Keys: space play/pause, n next, p previous, o open Spotify, q quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bridge := spotify.NewBridge()

	var fetcher state.ArtworkFetcher
	if !cfg.DisableArtwork {
		fetcher = state.NewArtworkFetcher()
	}

	store := state.NewStore()
	reconciler := state.NewReconciler(bridge, spotify.Running, fetcher, zerolog.Nop())
	poller := state.NewPoller(reconciler, store, cfg.PollInterval(), zerolog.Nop())

	app := tview.NewApplication()

	nowPlaying := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetTitleAlign(tview.AlignLeft)

	detail := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	detail.SetBorder(true).
		SetTitle(" Detail ").
		SetTitleAlign(tview.AlignLeft)

	status := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  space:play/pause  n:next  p:prev  o:open[-]")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nowPlaying, 0, 3, false).
		AddItem(detail, 5, 1, false).
		AddItem(status, 1, 1, false)

	transport := func(command spotify.Command) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if _, err := bridge.Execute(ctx, command); err == nil {
				poller.Kick()
			}
		}()
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			app.Stop()
			return nil
		case ' ':
			transport(spotify.PlayPause)
			return nil
		case 'n', 'N':
			transport(spotify.NextTrack)
			return nil
		case 'p', 'P':
			transport(spotify.PreviousTrack)
			return nil
		case 'o', 'O':
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = spotify.Open(ctx, bridge)
			}()
			return nil
		}
		return event
	})

	// Change detection caches
	var lastNowPlaying string
	var lastDetail string

	updateDisplay := func(st state.PlaybackState) {
		app.QueueUpdateDraw(func() {
			var npText string
			if st.HasTrack() {
				var sb strings.Builder
				sb.WriteString("\n")
				sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(st.TrackName)))
				sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(st.ArtistName)))

				stateIcon := "[green]▶[-]" // Play triangle
				if st.Kind == state.Paused {
					stateIcon = "[yellow]⏸[-]" // Pause icon
				}
				sb.WriteString(fmt.Sprintf("\n%s", stateIcon))
				npText = sb.String()
			} else {
				npText = fmt.Sprintf("\n\n[gray]%s[-]", tview.Escape(format.FullLabel(st)))
			}

			detailText := tview.Escape(format.DetailText(st))

			if npText != lastNowPlaying {
				lastNowPlaying = npText
				nowPlaying.SetText(npText)
			}
			if detailText != lastDetail {
				lastDetail = detailText
				detail.SetText(detailText)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe before the poller starts so the first publish is seen.
	updates := store.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = poller.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case st := <-updates:
				updateDisplay(st)
			}
		}
	}()

	if err := app.SetRoot(flex, true).Run(); err != nil {
		cancel()
		wg.Wait()
		return fmt.Errorf("TUI error: %w", err)
	}

	cancel()
	wg.Wait()
	return nil
}
