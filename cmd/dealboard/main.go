package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dealflow-labs/sponsorship-board/internal"
	"github.com/dealflow-labs/sponsorship-board/internal/config"
)

var cfg config.App

var rootCmd = &cobra.Command{
	Use:   "dealboard",
	Short: "Sponsorship deal board",
	Long: `dealboard keeps sponsorship agreements on a nine column pipeline board.
- serve: run the HTTP API with persistence, NATS events and metrics.
- board: print the board projection as a table.
- seed: write a YAML fixtures bundle into the database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := env.Parse(&cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}

		return setupLogger(cfg.Log)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd(), boardCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("dealboard")
		os.Exit(1)
	}
}

func setupLogger(c config.Log) error {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := internal.NewApplication(cfg)
			if err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}
}
