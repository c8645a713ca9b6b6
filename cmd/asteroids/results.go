package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/platform/tui"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
)

var (
	flagBrowse       bool
	flagResultsPilot string
	flagBestScenario string
	flagResultsLimit int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded episode results",
	Long: `Display episodes recorded in the database, most recent first.

Examples:
  asteroids results
  asteroids results --browse
  asteroids results --pilot hunter
  asteroids results --best default
  asteroids results --stats`,
	Run: runResults,
}

var flagStats bool

func init() {
	resultsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive episode browser")
	resultsCmd.Flags().StringVar(&flagResultsPilot, "pilot", "", "Only show episodes for this pilot")
	resultsCmd.Flags().StringVar(&flagBestScenario, "best", "", "Rank the best episodes for a scenario")
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 20, "Maximum episodes to show")
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-pilot aggregate statistics")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episode database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBrowse {
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		scenario := flagBestScenario
		if scenario == "" {
			scenario = "default"
		}
		if err := tui.RunBrowser(store, scenario, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagStats {
		printPilotStats(store)
		return
	}

	var records []storage.EpisodeRecord
	switch {
	case flagBestScenario != "":
		records, err = store.BestEpisodes(flagBestScenario, flagResultsLimit)
	case flagResultsPilot != "":
		records, err = store.PilotEpisodes(flagResultsPilot, flagResultsLimit)
	default:
		records, err = store.RecentEpisodes(flagResultsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading episodes: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No episodes recorded yet. Run 'asteroids run <pilot>' first.")
		return
	}

	fmt.Printf("%-12s %-10s %-18s %8s %9s %6s %7s  %s\n",
		"PILOT", "SCENARIO", "STOP", "TIME", "ROCKS", "ACC", "DEATHS", "DATE")
	for _, r := range records {
		fmt.Printf("%-12s %-10s %-18s %7.1fs %4d/%-4d %5.0f%% %7d  %s\n",
			r.Pilot, r.Scenario, r.StopReason,
			r.SimTime, r.AsteroidsDestroyed, r.MaxAsteroids,
			r.Accuracy*100, r.Deaths,
			r.CreatedAt.Format("Jan 02 15:04"))
	}
}

func printPilotStats(store *storage.Store) {
	stats, err := store.GetAllPilotStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No episodes recorded yet.")
		return
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-12s %9s %6s %9s %6s %7s  %s\n",
		"PILOT", "EPISODES", "BEST", "AVG", "ACC", "DEATHS", "LAST FLOWN")
	for _, name := range names {
		s := stats[name]
		fmt.Printf("%-12s %9d %6d %9.1f %5.0f%% %7d  %s\n",
			s.Pilot, s.Episodes, s.BestDestroyed, s.AvgDestroyed,
			s.AvgAccuracy*100, s.TotalDeaths,
			s.LastFlown.Format("Jan 02 15:04"))
	}
}
