package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dealflow-labs/sponsorship-board/internal/fixtures"
)

func seedCmd() *cobra.Command {
	var fixturesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the persisted state with a fixtures bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturesPath == "" {
				fixturesPath = cfg.Fixtures.Path
			}
			if fixturesPath == "" {
				return errors.New("fixtures path is required")
			}

			bundle, err := fixtures.Load(fixturesPath)
			if err != nil {
				return err
			}

			repo, err := openRepo()
			if err != nil {
				return err
			}

			if err = repo.Save(cmd.Context(), bundle.Persisted()); err != nil {
				return err
			}

			log.Info().
				Str("path", fixturesPath).
				Int("agreements", len(bundle.Agreements)).
				Int("achievements", len(bundle.Achievements)).
				Msg("fixtures seeded")

			return nil
		},
	}

	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "fixtures bundle (defaults to FIXTURES_PATH)")

	return cmd
}
