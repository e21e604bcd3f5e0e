package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

const flushTimeout = 5 * time.Second

type Saver interface {
	Save(ctx context.Context, p store.Persisted) error
}

type Source interface {
	Snapshot() store.Persisted
	Subscribe(store.Listener) func()
}

// Syncer writes the persisted subset of the store back to the database. Bursts of
// changes within the flush interval are saved once.
type Syncer struct {
	saver    Saver
	source   Source
	interval time.Duration

	dirty chan struct{}
}

func NewSyncer(saver Saver, source Source, interval time.Duration) *Syncer {
	return &Syncer{
		saver:    saver,
		source:   source,
		interval: interval,
		dirty:    make(chan struct{}, 1),
	}
}

func (s *Syncer) listen(e store.Event) {
	if !e.Kind.Persisted() {
		return
	}

	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Syncer) Start(ctx context.Context) error {
	unsubscribe := s.source.Subscribe(s.listen)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(ctx)
		case <-s.dirty:
		}

		select {
		case <-ctx.Done():
			return s.flush(context.WithoutCancel(ctx))
		case <-time.After(s.interval):
		}

		if err := s.flush(ctx); err != nil {
			log.Error().Err(err).Msg("persist state")
		}
	}
}

func (s *Syncer) shutdown(ctx context.Context) error {
	select {
	case <-s.dirty:
	default:
		return nil
	}

	return s.flush(context.WithoutCancel(ctx))
}

func (s *Syncer) flush(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	if err := s.saver.Save(ctx, s.source.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	log.Debug().Msg("state persisted")

	return nil
}
