package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/agent"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/telemetry"
)

var (
	flagEpisodes  int
	flagTimeLimit float64
	flagTrackCost bool
	flagCSVDir    string
	flagNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run <pilot>",
	Short: "Score a pilot headlessly",
	Long: `Run one or more scoring episodes with the given pilot and print the
final scores. Each episode within a batch gets a consecutive seed so the
whole batch is reproducible from the base seed.

Examples:
  asteroids run hunter
  asteroids run hunter --episodes 10 --seed 42
  asteroids run gunner --time-limit 60 --track-cost
  asteroids run idle --csv ./out --no-save`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes to run")
	runCmd.Flags().Float64Var(&flagTimeLimit, "time-limit", -1, "Episode time limit in seconds (-1 = scenario default, 0 = none)")
	runCmd.Flags().BoolVar(&flagTrackCost, "track-cost", false, "Measure wall-clock cost of pilot decisions")
	runCmd.Flags().StringVar(&flagCSVDir, "csv", "", "Directory for CSV telemetry output")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Skip saving episodes to the database")
}

func runRun(cmd *cobra.Command, args []string) {
	pilotName := args[0]
	if !agent.Exists(pilotName) {
		fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", pilotName)
		fmt.Fprintln(os.Stderr, "Run 'asteroids pilots' to see registered pilots.")
		os.Exit(1)
	}

	settings, scenario, err := loadEpisodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagTimeLimit >= 0 {
		settings.TimeLimit = flagTimeLimit
	}
	settings.TrackComputeCost = flagTrackCost

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "asteroids",
	})

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open episode database", "error", err)
		} else {
			defer store.Close()
		}
	}

	output, err := telemetry.NewOutputManager(flagCSVDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer output.Close()

	baseSeed := settings.Seed
	for i := 0; i < flagEpisodes; i++ {
		settings.Seed = baseSeed + int64(i)

		pilot, err := agent.Create(pilotName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		g, err := game.NewGame(settings, scenario, game.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		score, err := g.RunEpisode(pilot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running episode: %v\n", err)
			os.Exit(1)
		}

		printScore(i+1, settings.Seed, score)

		if store != nil {
			if _, err := store.SaveEpisode(pilotName, scenario.Name, settings.Seed, score); err != nil {
				logger.Warn("could not save episode", "error", err)
			}
		}
		if err := output.WriteEpisode(pilotName, scenario.Name, settings.Seed, score); err != nil {
			logger.Warn("could not write telemetry", "error", err)
		}
	}

	if dir := output.Dir(); dir != "" {
		fmt.Printf("\nTelemetry written to %s\n", dir)
	}
}

func printScore(episode int, seed int64, score game.Score) {
	fmt.Printf("episode %d (seed %d): %s after %.2fs\n",
		episode, seed, score.StoppingCondition, score.Time)
	fmt.Printf("  asteroids %d/%d  bullets %d  accuracy %.1f%%  deaths %d  lives left %d  distance %.0f\n",
		score.AsteroidsDestroyed, score.MaxAsteroids,
		score.BulletsFired, score.Accuracy()*100,
		score.Deaths, score.LivesRemaining, score.DistanceTravelled)
	for _, crash := range score.Crashes {
		state := "respawned"
		if crash.Fatal {
			state = "destroyed"
		}
		fmt.Printf("  crash at t=%.2fs (%.0f, %.0f) %s\n", crash.Time, crash.Pos.X, crash.Pos.Y, state)
	}
	if cost := score.ComputeCost; cost != nil && cost.Samples > 0 {
		fmt.Printf("  pilot cost: total %.4fs  mean %.6fs  median %.6fs  min %.6fs  max %.6fs\n",
			cost.Total, cost.Mean, cost.Median, cost.Min, cost.Max)
	}
}
