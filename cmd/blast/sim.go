package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	blastcore "github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

var (
	flagSimGames      int
	flagSimMoves      int
	flagSimColumns    int
	flagSimRows       int
	flagSimColors     int
	flagSimMinGroup   int
	flagSimGuarantees int
	flagSimVerbose    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless simulations",
	Long: `Run the simulation core without a terminal UI.

Each game plays a fixed move budget with a greedy policy (always blast
the largest group), then reports aggregate stats. Useful for balancing
board sizes and palettes, and for verifying the shuffle guarantee.

Seeds derive from --seed; the same seed always reproduces the same run.

Examples:
  blast sim
  blast sim --games 1000 --moves 50
  blast sim --colors 4 --size-columns 8 --size-rows 8
  blast sim --seed 42 --verbose`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games to simulate")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 25, "Moves per game")
	simCmd.Flags().IntVar(&flagSimColumns, "size-columns", 10, "Board columns")
	simCmd.Flags().IntVar(&flagSimRows, "size-rows", 10, "Board rows")
	simCmd.Flags().IntVar(&flagSimColors, "colors", 6, "Palette size")
	simCmd.Flags().IntVar(&flagSimMinGroup, "min-group", 2, "Minimum blastable group size")
	simCmd.Flags().IntVar(&flagSimGuarantees, "guarantees", 2, "Guaranteed playable colors after a shuffle")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every blast and shuffle")
}

// simResult holds the outcome of one simulated game.
type simResult struct {
	score        int
	blasts       int
	largestGroup int
	shuffles     int
	shortfalls   int
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	logger.Info("starting simulation",
		"games", flagSimGames,
		"moves", flagSimMoves,
		"board", fmt.Sprintf("%dx%d", flagSimColumns, flagSimRows),
		"colors", flagSimColors,
		"seed", baseSeed,
	)

	pal := blastcore.DefaultPalette(flagSimColors)
	if flagSimMinGroup >= 2 {
		pal.MinGroupSize = flagSimMinGroup
	}
	if cells := flagSimColumns * flagSimRows; pal.MinGroupSize > cells {
		logger.Fatal("min group size exceeds board capacity", "min_group", pal.MinGroupSize, "cells", cells)
	}
	if flagSimGuarantees < 0 {
		flagSimGuarantees = 0
	}

	var total simResult
	maxScore := 0
	for i := 0; i < flagSimGames; i++ {
		res := simulateGame(logger, pal, baseSeed+int64(i))
		total.score += res.score
		total.blasts += res.blasts
		total.shuffles += res.shuffles
		total.shortfalls += res.shortfalls
		if res.largestGroup > total.largestGroup {
			total.largestGroup = res.largestGroup
		}
		if res.score > maxScore {
			maxScore = res.score
		}
	}

	games := flagSimGames
	if games == 0 {
		games = 1
	}
	logger.Info("simulation complete",
		"avg_score", total.score/games,
		"max_score", maxScore,
		"avg_blasts", total.blasts/games,
		"largest_group", total.largestGroup,
		"shuffles", total.shuffles,
		"shortfalls", total.shortfalls,
	)
}

// colorChars renders a color list as its single-character codes.
func colorChars(colors []blastcore.Color) string {
	chars := make([]rune, len(colors))
	for i, c := range colors {
		chars[i] = c.Char()
	}
	return string(chars)
}

// simulateGame plays one game to its move budget with the greedy policy.
func simulateGame(logger *log.Logger, pal blastcore.Palette, seed int64) simResult {
	pipeline := blastcore.NewPipeline(blastcore.Config{
		Columns:          flagSimColumns,
		Rows:             flagSimRows,
		Palette:          pal,
		GuaranteedColors: flagSimGuarantees,
		Seed:             seed,
	})

	var res simResult
	pipeline.Subscribe(func(e blastcore.Event) {
		switch ev := e.(type) {
		case blastcore.BlastCompleteEvent:
			res.score += ev.Score
			res.blasts++
			if ev.Cleared > res.largestGroup {
				res.largestGroup = ev.Cleared
			}
			logger.Debug("blast", "seed", seed, "cleared", ev.Cleared, "score", ev.Score)
		case blastcore.ShuffleCompleteEvent:
			res.shuffles++
			logger.Debug("shuffle",
				"seed", seed,
				"moves", len(ev.Result.Moves),
				"guaranteed", colorChars(ev.Result.GuaranteedColors),
			)
		case blastcore.ShuffleShortfallEvent:
			res.shortfalls++
			logger.Warn("shuffle shortfall", "seed", seed, "requested", ev.Requested, "placed", ev.Placed)
		}
	})
	pipeline.Start()

	for move := 0; move < flagSimMoves; move++ {
		if !pipeline.AutoStep(blastcore.GreedyPick) {
			// Cannot happen on a post-shuffle board, but a budget of
			// zero-size boards should not spin forever.
			break
		}
	}
	return res
}
