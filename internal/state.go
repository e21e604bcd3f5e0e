package internal

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/fixtures"
	"github.com/dealflow-labs/sponsorship-board/internal/persistence"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

// OpenStore builds the store from the database. The fixtures bundle fills an empty
// database once and always provides the dashboard metrics and insights.
func OpenStore(ctx context.Context, repo *persistence.Repo, fixturesPath string, opts ...store.Option) (*store.Store, error) {
	st := store.New(opts...)

	persisted, restored, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if restored {
		st.Restore(persisted)
		log.Info().Int("agreements", len(persisted.Agreements)).Msg("state restored")
	}

	if fixturesPath == "" {
		return st, nil
	}

	bundle, err := fixtures.Load(fixturesPath)
	if err != nil {
		return nil, err
	}
	bundle.Apply(st, restored)

	if !restored {
		if err = repo.Save(ctx, st.Snapshot()); err != nil {
			return nil, fmt.Errorf("save fixtures: %w", err)
		}
	}

	return st, nil
}
