// asteroids is a deterministic Asteroids-style scoring environment for
// autonomous control agents.
//
// Usage:
//
//	asteroids pilots           - List registered pilots
//	asteroids run <pilot>      - Score a pilot headlessly
//	asteroids watch <pilot>    - Watch a pilot fly in the terminal
//	asteroids results          - Show recorded episode results
//	asteroids export           - Export recorded episodes to CSV
//	asteroids serve            - Start SSH server for remote spectating
//
// Global flags:
//
//	--freq <hz>        - Simulation frequency (default: 60)
//	--seed <value>     - RNG seed (0 = random based on time)
//	--db <path>        - Episode database path
//	--scenario <path>  - Path to a scenario YAML file
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/config"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

var (
	// Global flags
	flagFreq     int
	flagSeed     int64
	flagDBPath   string
	flagScenario string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids scoring environment for autonomous pilots",
	Long: `A deterministic Asteroids-style simulation that scores autonomous
control agents. Pilots receive the observable state each tick and answer
with thrust, turn rate, and fire commands; the environment records how
well they survive and clear the field.

Available commands:
  pilots   - List registered pilots
  run      - Score a pilot headlessly over one or more episodes
  watch    - Watch a pilot fly in the terminal
  results  - View recorded episode results
  export   - Export recorded episodes to CSV
  serve    - SSH server for remote spectating

Examples:
  asteroids pilots
  asteroids run hunter --episodes 10
  asteroids run hunter --seed 42 --track-cost
  asteroids watch gunner
  asteroids results --browse
  asteroids serve --ssh :2222 --pilot hunter`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFreq, "freq", 0, "Simulation frequency in Hz (0 = scenario default)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.asteroids/episodes.db", "Path to episode database")
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "", "Path to a scenario YAML file")

	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadEpisodeConfig resolves the scenario file and applies the global flag
// overrides on top of it.
func loadEpisodeConfig() (game.Settings, game.Scenario, error) {
	cfg, err := config.Load(flagScenario)
	if err != nil {
		return game.Settings{}, game.Scenario{}, err
	}
	settings, scenario, err := cfg.ToGame()
	if err != nil {
		return game.Settings{}, game.Scenario{}, err
	}

	if flagFreq > 0 {
		settings.Frequency = flagFreq
	}
	if flagSeed != 0 {
		settings.Seed = flagSeed
	}
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	return settings, scenario, nil
}
