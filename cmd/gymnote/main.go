// Package main provides the terminal client for the gym note taker.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/config"
	"nclx/gymnotetaker/internal/logging"
	"nclx/gymnotetaker/internal/tui"
)

const defaultLogFile = "gymnote.log"

var (
	configPath string
	endpoint   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gymnote",
		Short:        "Log your gym sets week by week",
		SilenceUsage: true,
		RunE:         runApp,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yaml")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "backend URL (overrides backend.endpoint)")
	return rootCmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Backend.Endpoint = endpoint
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logParams := logging.ParamsFromConfig(cfg.Log)
	logParams.LogToStdout = false
	if logParams.LogFileName == "" {
		logParams.LogFileName = defaultLogFile
	}
	logging.Setup(logParams)

	client := backend.New(cfg.Backend)
	state := appstate.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go state.Run(ctx)

	// A fresh client holds no token, so this starts on the sign-in screen.
	if err := state.Init(ctx, client); err != nil {
		log.Warnf("checking current session: %s", err)
	}

	app := tui.NewApp(client, state, tui.Options{MaxSets: cfg.Session.MaxSets})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
