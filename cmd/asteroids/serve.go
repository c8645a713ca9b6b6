package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/agent"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePilot  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the spectator SSH server",
	Long: `Start an SSH server that lets users connect and watch a pilot fly.

Each SSH connection gets its own episode of the configured scenario.
Finished episodes are recorded in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.asteroids/host_key

Examples:
  asteroids serve                          # Listen on :23234 watching hunter
  asteroids serve --ssh :2222 --pilot idle
  asteroids serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePilot, "pilot", "hunter", "Pilot that spectator sessions watch")
}

func runServe(_ *cobra.Command, _ []string) {
	if !agent.Exists(flagServePilot) {
		fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", flagServePilot)
		os.Exit(1)
	}

	settings, scenario, err := loadEpisodeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Let each session draw its own seed unless one was pinned.
	if flagSeed == 0 {
		settings.Seed = 0
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		PilotName:   flagServePilot,
		Settings:    settings,
		Scenario:    scenario,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
