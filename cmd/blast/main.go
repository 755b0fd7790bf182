// blast is a tile-collapse puzzle played in the terminal.
//
// Usage:
//
//	blast list               - List available modes
//	blast play [mode]        - Play a mode (default: blast)
//	blast menu               - Start the interactive mode picker
//	blast serve              - Start SSH server for remote play
//	blast scores <mode>      - Show high scores for a mode
//	blast sim                - Run headless simulations
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.blast/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-blast/internal/games/blast"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - a tile-collapse puzzle in your terminal",
	Long: `Blast is a terminal tile-collapse puzzle. Move the cursor over a
group of two or more same-colored tiles and blast it; tiles above fall
down, fresh tiles refill the columns, and a guaranteed-match shuffle
rescues you from dead boards.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run headless simulations

Examples:
  blast list
  blast play blast
  blast play blast_endless --difficulty hard
  blast menu
  blast serve --ssh :2222
  blast scores blast
  blast sim --games 100`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blast/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
