package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/telemetry"
)

var (
	flagExportOut   string
	flagExportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded episodes to CSV",
	Long: `Write episodes from the database to a CSV file for analysis.

Examples:
  asteroids export
  asteroids export --out ./episodes.csv --limit 500`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "episodes.csv", "Output CSV path")
	exportCmd.Flags().IntVar(&flagExportLimit, "limit", 1000, "Maximum episodes to export")
}

func runExport(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episode database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	records, err := store.RecentEpisodes(flagExportLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading episodes: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No episodes recorded yet. Nothing to export.")
		return
	}

	rows := make([]telemetry.EpisodeRow, 0, len(records))
	for _, r := range records {
		row := telemetry.EpisodeRow{
			Pilot:              r.Pilot,
			Scenario:           r.Scenario,
			Seed:               r.Seed,
			StopReason:         r.StopReason.String(),
			SimTime:            r.SimTime,
			FrameCount:         r.FrameCount,
			LivesRemaining:     r.LivesRemaining,
			AsteroidsDestroyed: r.AsteroidsDestroyed,
			MaxAsteroids:       r.MaxAsteroids,
			BulletsFired:       r.BulletsFired,
			Deaths:             r.Deaths,
			Accuracy:           r.Accuracy,
			DistanceTravelled:  r.DistanceTravelled,
		}
		if r.ComputeCostTotal != nil {
			row.ComputeCostTotal = *r.ComputeCostTotal
		}
		rows = append(rows, row)
	}

	f, err := os.Create(flagExportOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagExportOut, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d episodes to %s\n", len(rows), flagExportOut)
}
