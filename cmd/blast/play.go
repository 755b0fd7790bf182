package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blast).

Controls:
  WASD/Arrows - Move cursor
  Space/Enter - Blast the group under the cursor
  P/Esc       - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Fewer colors, generous shuffles
  normal - Default palette and shuffle guarantees
  hard   - More colors, stingier shuffles
  fixed  - No progression, stays at config's initial level

When --difficulty is not given, a difficulty picker is shown.

Examples:
  blast play
  blast play blast_endless
  blast play blast --difficulty hard
  blast play blast_endless --difficulty fixed
  blast play blast --config ./my-blast.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "blast"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blast list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early for the difficulty picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	blast.SetConfigPath(flagConfig)
	difficulty := flagDifficulty
	if difficulty == "" {
		selection, updatedCfg, selErr := tui.RunBlastMenu(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return
		}
		difficulty = selection.Preset
	}
	blast.SetDifficultyPreset(difficulty)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
