package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/agent"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/platform/tui"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <pilot>",
	Short: "Watch a pilot fly in the terminal",
	Long: `Run an episode with the given pilot and render it live.

Controls:
  P/Space    - Pause
  R          - Restart (replays the same seed)
  Q/Ctrl+C   - Quit

Examples:
  asteroids watch hunter
  asteroids watch gunner --seed 42
  asteroids watch idle --scenario ./my-scenario.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
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

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open episode database: %v\n", err)
		store = nil
	}

	cfg := tui.ViewerConfig{
		PilotName: pilotName,
		Settings:  settings,
		Scenario:  scenario,
		ScreenW:   width,
		ScreenH:   height,
	}
	score, runErr := tui.Run(cfg, store)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
	if score.StoppingCondition.Terminal() {
		printScore(1, settings.Seed, score)
	}
}
