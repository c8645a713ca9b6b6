package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/agent"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List registered pilots",
	Long: `Display all pilots registered with the environment.

Examples:
  asteroids pilots
  asteroids run <pilot>`,
	Run: runPilots,
}

func runPilots(cmd *cobra.Command, args []string) {
	infos := agent.List()
	if len(infos) == 0 {
		fmt.Println("No pilots registered.")
		return
	}

	fmt.Println("Registered pilots:")
	for _, info := range infos {
		fmt.Printf("  %-12s %s\n", info.Name, info.Description)
	}
	fmt.Println("\nScore one with: asteroids run <pilot>")
}
