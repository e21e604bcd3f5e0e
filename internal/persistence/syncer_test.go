package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

type memorySaver struct {
	mu    sync.Mutex
	saved []store.Persisted
}

func (m *memorySaver) Save(_ context.Context, p store.Persisted) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = append(m.saved, p)

	return nil
}

func (m *memorySaver) list() []store.Persisted {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]store.Persisted, len(m.saved))
	copy(res, m.saved)

	return res
}

func startSyncer(t *testing.T, s *store.Store, saver Saver, interval time.Duration) (context.CancelFunc, <-chan error) {
	t.Helper()

	syncer := NewSyncer(saver, s, interval)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- syncer.Start(ctx)
	}()

	// wait for the subscription to be registered
	time.Sleep(20 * time.Millisecond)

	return cancel, done
}

func TestUnitSyncerCoalescesChanges(t *testing.T) {
	s := store.New()
	saver := &memorySaver{}
	cancel, done := startSyncer(t, s, saver, 50*time.Millisecond)

	s.Create(agreement.Draft{Title: "one", Status: agreement.StatusProspects})
	s.Create(agreement.Draft{Title: "two", Status: agreement.StatusProspects})
	s.SetTheme(user.ThemeDark)

	require.Eventually(t, func() bool {
		list := saver.list()
		return len(list) > 0 && len(list[len(list)-1].Agreements) == 2
	}, time.Second, 10*time.Millisecond)

	last := saver.list()[len(saver.list())-1]
	require.Equal(t, user.ThemeDark, last.Theme)
	require.LessOrEqual(t, len(saver.list()), 2)

	cancel()
	require.NoError(t, <-done)
}

func TestUnitSyncerIgnoresTransientState(t *testing.T) {
	s := store.New()
	saver := &memorySaver{}
	cancel, done := startSyncer(t, s, saver, 10*time.Millisecond)

	s.AddNotification(notification.Draft{Title: "hello", Type: notification.SeverityInfo})
	s.SetSearchQuery("tech")
	time.Sleep(50 * time.Millisecond)

	require.Empty(t, saver.list())

	cancel()
	require.NoError(t, <-done)
}

func TestUnitSyncerFlushesPendingOnShutdown(t *testing.T) {
	s := store.New()
	saver := &memorySaver{}
	cancel, done := startSyncer(t, s, saver, time.Hour)

	s.Create(agreement.Draft{Title: "one", Status: agreement.StatusProspects})
	time.Sleep(20 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	require.Len(t, saver.list(), 1)
	require.Len(t, saver.list()[0].Agreements, 1)
}
