package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

type tickClock struct {
	current time.Time
}

func (c *tickClock) now() time.Time {
	c.current = c.current.Add(time.Second)

	return c.current
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	clock := &tickClock{current: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}

	return New(WithClock(clock.now))
}

func draft(title string, status agreement.Status) agreement.Draft {
	return agreement.Draft{
		Title: title,
		Sponsor: agreement.Sponsor{
			Name:    "TechCorp",
			Contact: "María García",
			Email:   "maria@techcorp.com",
			Phone:   pointy.String("+34 123 456 789"),
			Company: "TechCorp Solutions",
		},
		Description:  "Software launch",
		Amount:       decimal.NewFromInt(5000),
		Currency:     "EUR",
		ContentType:  []string{"Video Principal", "Stories"},
		Requirements: pointy.String("Mention the main features"),
		StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Duration:     agreement.DurationOnce,
		Priority:     agreement.PriorityLow,
		Status:       status,
		Tags:         []string{"tech", "B2B"},
		Attachments:  agreement.Attachments{References: []string{"ref-1"}},
	}
}

func TestUnitCreateAssignsIdentity(t *testing.T) {
	s := newTestStore(t)

	d := draft("Deal X", agreement.StatusProspects)
	a := s.Create(d)

	require.NotEmpty(t, a.ID)
	require.Equal(t, a.CreatedAt, a.UpdatedAt)
	require.Equal(t, d.Build(a.ID, a.CreatedAt), a)

	list := s.Agreements()
	require.Len(t, list, 1)
	require.Equal(t, a, list[0])
}

func TestUnitCreateGeneratesUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		a := s.Create(draft(fmt.Sprintf("deal-%d", i), agreement.StatusProspects))
		_, dup := seen[a.ID]
		require.False(t, dup, "duplicate id %s", a.ID)
		seen[a.ID] = struct{}{}
	}
}

func TestUnitCreateRetriesOnCollidingGenerator(t *testing.T) {
	ids := []string{"a", "a", "b"}
	s := New(WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]

		return id
	}))

	first := s.Create(draft("one", agreement.StatusProspects))
	second := s.Create(draft("two", agreement.StatusProspects))

	require.Equal(t, "a", first.ID)
	require.Equal(t, "b", second.ID)
}

func TestUnitCreateDoesNotAliasInput(t *testing.T) {
	s := newTestStore(t)

	d := draft("Deal X", agreement.StatusProspects)
	a := s.Create(d)
	d.Tags[0] = "changed"

	stored, err := s.Agreement(a.ID)
	require.NoError(t, err)
	require.Equal(t, "tech", stored.Tags[0])
}

func TestUnitUpdateChangesOnlySuppliedFields(t *testing.T) {
	s := newTestStore(t)
	a := s.Create(draft("Deal X", agreement.StatusNegotiation))
	other := s.Create(draft("Deal Y", agreement.StatusProspects))

	high := agreement.PriorityHigh
	updated, err := s.Update(a.ID, agreement.Patch{Priority: &high})
	require.NoError(t, err)

	require.Equal(t, agreement.PriorityHigh, updated.Priority)
	require.True(t, updated.UpdatedAt.After(a.UpdatedAt))

	expected := a
	expected.Priority = agreement.PriorityHigh
	expected.UpdatedAt = updated.UpdatedAt
	require.Equal(t, expected, updated)

	untouched, err := s.Agreement(other.ID)
	require.NoError(t, err)
	require.Equal(t, other, untouched)
}

func TestUnitUpdateMissingIsNoop(t *testing.T) {
	s := newTestStore(t)
	a := s.Create(draft("Deal X", agreement.StatusProspects))

	calls := 0
	s.Subscribe(func(Event) { calls++ })

	_, err := s.Update("missing", agreement.Patch{Title: pointy.String("nope")})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, []agreement.Agreement{a}, s.Agreements())
	require.Zero(t, calls)
}

func TestUnitChangeStatusAcceptsAnyTransition(t *testing.T) {
	for _, from := range agreement.Pipeline() {
		for _, to := range agreement.Pipeline() {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				s := newTestStore(t)
				a := s.Create(draft("Deal", from))

				moved, err := s.ChangeStatus(a.ID, to)
				require.NoError(t, err)
				require.Equal(t, to, moved.Status)
				require.False(t, moved.UpdatedAt.Before(moved.CreatedAt))
			})
		}
	}
}

func TestUnitChangeStatusErrors(t *testing.T) {
	s := newTestStore(t)
	a := s.Create(draft("Deal", agreement.StatusProspects))

	_, err := s.ChangeStatus(a.ID, agreement.Status("archived"))
	require.ErrorIs(t, err, agreement.ErrInvalidStatus)

	_, err = s.ChangeStatus("missing", agreement.StatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)

	stored, err := s.Agreement(a.ID)
	require.NoError(t, err)
	require.Equal(t, a, stored)
}

func TestUnitUpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	created := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	s.ReplaceAll([]agreement.Agreement{
		{ID: "future", Status: agreement.StatusProspects, CreatedAt: created, UpdatedAt: created},
	})

	moved, err := s.ChangeStatus("future", agreement.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, created, moved.UpdatedAt)
}

func TestUnitDelete(t *testing.T) {
	s := newTestStore(t)
	a := s.Create(draft("Deal X", agreement.StatusProspects))
	b := s.Create(draft("Deal Y", agreement.StatusProspects))
	s.SetSelectedAgreement(a.ID)

	require.NoError(t, s.Delete(a.ID))
	require.Equal(t, []agreement.Agreement{b}, s.Agreements())
	require.Nil(t, s.Selection().AgreementID)

	require.ErrorIs(t, s.Delete(a.ID), ErrNotFound)
	require.Len(t, s.Agreements(), 1)
}

func TestUnitReplaceAll(t *testing.T) {
	s := newTestStore(t)
	s.Create(draft("old", agreement.StatusProspects))

	list := []agreement.Agreement{
		{ID: "1", Title: "one", Status: agreement.StatusCompleted},
		{ID: "2", Title: "two", Status: agreement.StatusProspects},
	}
	s.ReplaceAll(list)

	require.Equal(t, list, s.Agreements())
}

func TestUnitNotifications(t *testing.T) {
	s := newTestStore(t)

	first := s.AddNotification(notification.Draft{Title: "first", Message: "m", Type: notification.SeverityInfo})
	second := s.AddNotification(notification.Draft{Title: "second", Message: "m", Type: notification.SeverityError})

	list := s.Notifications()
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
	require.False(t, list[0].Read)
	require.NotEqual(t, first.ID, second.ID)

	require.NoError(t, s.MarkNotificationRead(first.ID))
	require.True(t, s.Notifications()[1].Read)
	require.False(t, s.Notifications()[0].Read)

	require.ErrorIs(t, s.MarkNotificationRead("missing"), ErrNotFound)

	s.ClearNotifications()
	require.Empty(t, s.Notifications())
}

func TestUnitUnlockAchievement(t *testing.T) {
	s := newTestStore(t)
	s.SetAchievements(achievements.Achievements{
		{ID: "first-deal", Title: "First deal", Progress: 0, MaxProgress: 1, Category: achievements.CategoryDeals},
		{ID: "ten-deals", Title: "Ten deals", Progress: 3, MaxProgress: 10, Category: achievements.CategoryDeals},
	})

	require.NoError(t, s.UnlockAchievement("first-deal"))
	require.ErrorIs(t, s.UnlockAchievement("missing"), ErrNotFound)

	list := s.Achievements()
	require.True(t, list[0].Unlocked)
	require.NotNil(t, list[0].UnlockedAt)
	require.False(t, list[1].Unlocked)
	require.Nil(t, list[1].UnlockedAt)
}

func TestUnitCriteriaSettersReplaceVerbatim(t *testing.T) {
	s := newTestStore(t)

	s.SetStatusFilter([]agreement.Status{agreement.StatusProspects, agreement.StatusCompleted})
	s.SetStatusFilter([]agreement.Status{agreement.StatusNegotiation})
	s.SetPriorityFilter([]agreement.Priority{agreement.PriorityHigh})
	s.SetSearchQuery("TechCorp ")

	c := s.Criteria()
	require.Equal(t, []agreement.Status{agreement.StatusNegotiation}, c.Statuses)
	require.Equal(t, []agreement.Priority{agreement.PriorityHigh}, c.Priorities)
	require.Equal(t, "TechCorp ", c.Search)

	s.SetStatusFilter(nil)
	require.Empty(t, s.Criteria().Statuses)
}

func TestUnitSetCriteriaIsSingleMutation(t *testing.T) {
	s := newTestStore(t)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	in := board.Criteria{
		Search:     "tech",
		Statuses:   []agreement.Status{agreement.StatusNegotiation},
		Priorities: []agreement.Priority{agreement.PriorityHigh},
	}
	s.SetCriteria(in)
	in.Statuses[0] = agreement.StatusCompleted

	require.Len(t, events, 1)
	require.Equal(t, EventCriteriaChanged, events[0].Kind)

	c := s.Criteria()
	require.Equal(t, "tech", c.Search)
	require.Equal(t, []agreement.Status{agreement.StatusNegotiation}, c.Statuses)
	require.Equal(t, []agreement.Priority{agreement.PriorityHigh}, c.Priorities)
}

func TestUnitBoardUsesStoredCriteria(t *testing.T) {
	s := newTestStore(t)
	s.Create(draft("Deal X", agreement.StatusProspects))
	s.Create(draft("Deal Y", agreement.StatusNegotiation))
	s.SetStatusFilter([]agreement.Status{agreement.StatusNegotiation})

	b := s.Board()
	require.Equal(t, 1, b.Total())
	col, ok := b.Column(agreement.StatusNegotiation)
	require.True(t, ok)
	require.Equal(t, "Deal Y", col.Agreements[0].Title)
}

func TestUnitSubscribe(t *testing.T) {
	s := newTestStore(t)

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) {
		// the mutation must already be visible when listeners run
		if e.Kind == EventAgreementCreated {
			_, err := s.Agreement(e.ID)
			require.NoError(t, err)
		}
		events = append(events, e)
	})

	a := s.Create(draft("Deal X", agreement.StatusProspects))
	_, err := s.ChangeStatus(a.ID, agreement.StatusCompleted)
	require.NoError(t, err)
	require.NoError(t, s.Delete(a.ID))

	require.Len(t, events, 3)
	require.Equal(t, EventAgreementCreated, events[0].Kind)
	require.Equal(t, EventAgreementStatusChanged, events[1].Kind)
	require.Equal(t, agreement.StatusCompleted, events[1].Agreement.Status)
	require.Equal(t, EventAgreementDeleted, events[2].Kind)
	require.Nil(t, events[2].Agreement)

	unsubscribe()
	s.Create(draft("Deal Y", agreement.StatusProspects))
	require.Len(t, events, 3)
}

func TestUnitConcurrentStatusChangesDeliverInOrder(t *testing.T) {
	s := New()
	a := s.Create(draft("Deal X", agreement.StatusProspects))

	var (
		mu     sync.Mutex
		events []Event
	)
	s.Subscribe(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	pipeline := agreement.Pipeline()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(status agreement.Status) {
			defer wg.Done()
			_, err := s.ChangeStatus(a.ID, status)
			assert.NoError(t, err)
		}(pipeline[i%len(pipeline)])
	}
	wg.Wait()

	require.Len(t, events, 200)
	for i := 1; i < len(events); i++ {
		require.Equal(t, events[i-1].Seq+1, events[i].Seq)
	}

	stored, err := s.Agreement(a.ID)
	require.NoError(t, err)
	require.Equal(t, stored.Status, events[len(events)-1].Agreement.Status)
}

func TestUnitSnapshotAndRestore(t *testing.T) {
	s := newTestStore(t)
	s.SetUser(&user.User{ID: "1", Name: "Juan", Role: user.RoleCreator})
	s.SetTheme(user.ThemeDark)
	s.Create(draft("Deal X", agreement.StatusProspects))
	s.SetAchievements(achievements.Achievements{{ID: "first-deal", MaxProgress: 1}})
	s.AddNotification(notification.Draft{Title: "not persisted", Type: notification.SeverityInfo})

	snapshot := s.Snapshot()

	restored := newTestStore(t)
	restored.Restore(snapshot)

	require.Equal(t, snapshot, restored.Snapshot())
	require.Equal(t, user.ThemeDark, restored.Theme())
	require.Empty(t, restored.Notifications())

	restored.Restore(Persisted{})
	require.Equal(t, user.ThemeLight, restored.Theme())
	require.Nil(t, restored.User())
}

func TestUnitEventKindClassification(t *testing.T) {
	for name, tc := range map[string]struct {
		kind      EventKind
		persisted bool
		board     bool
	}{
		"created":      {kind: EventAgreementCreated, persisted: true, board: true},
		"criteria":     {kind: EventCriteriaChanged, persisted: false, board: true},
		"theme":        {kind: EventThemeChanged, persisted: true, board: false},
		"notification": {kind: EventNotificationAdded, persisted: false, board: false},
		"restored":     {kind: EventRestored, persisted: false, board: true},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.persisted, tc.kind.Persisted())
			require.Equal(t, tc.board, tc.kind.AffectsBoard())
		})
	}
}
