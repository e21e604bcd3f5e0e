package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/dashboard"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

var ErrNotFound = errors.New("not found")

type Clock func() time.Time

type IDGenerator func() string

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) {
		s.now = c
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		s.newID = g
	}
}

// Store owns all mutable application state. Every mutation happens under the write
// lock, and listeners are called once the new state is visible to readers.
type Store struct {
	mu sync.RWMutex

	now   Clock
	newID IDGenerator

	user          *user.User
	theme         user.Theme
	agreements    []agreement.Agreement
	notifications []notification.Notification
	achievements  achievements.Achievements
	metrics       *dashboard.Metrics
	insights      []dashboard.Insight
	criteria      board.Criteria
	selection     Selection
	seq           uint64

	emu     sync.Mutex
	turn    *sync.Cond
	emitted uint64

	lmu       sync.Mutex
	listeners map[int]Listener
	order     []int
	nextKey   int
}

func New(opts ...Option) *Store {
	s := &Store{
		now:       time.Now,
		newID:     uuid.NewString,
		theme:     user.ThemeLight,
		listeners: make(map[int]Listener),
	}
	s.turn = sync.NewCond(&s.emu)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers a listener and returns the function removing it.
func (s *Store) Subscribe(l Listener) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	key := s.nextKey
	s.nextKey++
	s.listeners[key] = l
	s.order = append(s.order, key)

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()

		delete(s.listeners, key)
		s.order = slices.DeleteFunc(s.order, func(k int) bool { return k == key })
	}
}

// release stamps the pending event with the next sequence number and drops the
// write lock. Must be called with mu held.
func (s *Store) release() uint64 {
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	return seq
}

// emit delivers events in the order their mutations were applied. A mutation
// that unlocked early waits here until every earlier event has been delivered.
func (s *Store) emit(seq uint64, e Event) {
	s.emu.Lock()
	for s.emitted != seq-1 {
		s.turn.Wait()
	}
	s.emu.Unlock()

	defer func() {
		s.emu.Lock()
		s.emitted = seq
		s.emu.Unlock()
		s.turn.Broadcast()
	}()

	e.Seq = seq
	s.notify(e)
}

func (s *Store) notify(e Event) {
	s.lmu.Lock()
	list := make([]Listener, 0, len(s.order))
	for _, key := range s.order {
		list = append(list, s.listeners[key])
	}
	s.lmu.Unlock()

	for _, l := range list {
		l(e)
	}
}

func (s *Store) Create(d agreement.Draft) agreement.Agreement {
	s.mu.Lock()
	now := s.now()
	a := d.Build(s.generateID(), now).Clone()
	s.agreements = append(s.agreements, a)
	seq := s.release()

	res := a.Clone()
	s.emit(seq, Event{Kind: EventAgreementCreated, ID: a.ID, At: now, Agreement: &res})

	return a.Clone()
}

// generateID retries until the generator yields an id unused in the collection.
// Must be called under the write lock.
func (s *Store) generateID() string {
	id := s.newID()
	if s.indexOf(id) < 0 {
		return id
	}

	return s.generateID()
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.agreements, func(a agreement.Agreement) bool {
		return a.ID == id
	})
}

// Update replaces the supplied fields of one agreement and refreshes UpdatedAt.
// A missing id leaves the state untouched and yields ErrNotFound.
func (s *Store) Update(id string, p agreement.Patch) (agreement.Agreement, error) {
	return s.mutate(id, EventAgreementUpdated, p.Apply)
}

// ChangeStatus moves an agreement to any of the pipeline statuses, regardless of
// the current one.
func (s *Store) ChangeStatus(id string, status agreement.Status) (agreement.Agreement, error) {
	if !status.Valid() {
		return agreement.Agreement{}, fmt.Errorf("%w: %q", agreement.ErrInvalidStatus, status)
	}

	return s.mutate(id, EventAgreementStatusChanged, func(a agreement.Agreement) agreement.Agreement {
		a.Status = status

		return a
	})
}

func (s *Store) mutate(id string, kind EventKind, fn func(agreement.Agreement) agreement.Agreement) (agreement.Agreement, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug().Str("id", id).Str("kind", string(kind)).Msg("agreement not found")

		return agreement.Agreement{}, fmt.Errorf("agreement %s: %w", id, ErrNotFound)
	}

	now := s.now()
	updated := fn(s.agreements[idx])
	updated.ID = s.agreements[idx].ID
	updated.CreatedAt = s.agreements[idx].CreatedAt
	updated.UpdatedAt = now
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}

	s.agreements[idx] = updated
	seq := s.release()

	res := updated.Clone()
	s.emit(seq, Event{Kind: kind, ID: id, At: now, Agreement: &res})

	return updated.Clone(), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()

		return fmt.Errorf("agreement %s: %w", id, ErrNotFound)
	}

	s.agreements = slices.Delete(s.agreements, idx, idx+1)
	if s.selection.AgreementID != nil && *s.selection.AgreementID == id {
		s.selection.AgreementID = nil
	}
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventAgreementDeleted, ID: id, At: now})

	return nil
}

// ReplaceAll swaps the whole agreement collection, as done by bulk loads.
func (s *Store) ReplaceAll(list []agreement.Agreement) {
	s.mu.Lock()
	s.agreements = cloneAgreements(list)
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventAgreementsReplaced, At: now})
}

func (s *Store) Agreements() []agreement.Agreement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAgreements(s.agreements)
}

func (s *Store) Agreement(id string) (agreement.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return agreement.Agreement{}, fmt.Errorf("agreement %s: %w", id, ErrNotFound)
	}

	return s.agreements[idx].Clone(), nil
}

// AddNotification prepends an unread notification.
func (s *Store) AddNotification(d notification.Draft) notification.Notification {
	s.mu.Lock()
	now := s.now()
	n := d.Build(s.newID(), now)
	s.notifications = slices.Insert(s.notifications, 0, n)
	seq := s.release()

	s.emit(seq, Event{Kind: EventNotificationAdded, ID: n.ID, At: now})

	return n
}

func (s *Store) MarkNotificationRead(id string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.notifications, func(n notification.Notification) bool {
		return n.ID == id
	})
	if idx < 0 {
		s.mu.Unlock()

		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}

	s.notifications[idx].Read = true
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventNotificationRead, ID: id, At: now})

	return nil
}

func (s *Store) ClearNotifications() {
	s.mu.Lock()
	s.notifications = nil
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventNotificationsCleared, At: now})
}

// Notifications returns the list newest first.
func (s *Store) Notifications() []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]notification.Notification, len(s.notifications))
	copy(res, s.notifications)

	return res
}

func (s *Store) SetAchievements(list achievements.Achievements) {
	s.mu.Lock()
	s.achievements = list.Clone()
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventAchievementsReplaced, At: now})
}

func (s *Store) UnlockAchievement(id string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.achievements, func(a achievements.Achievement) bool {
		return a.ID == id
	})
	if idx < 0 {
		s.mu.Unlock()

		return fmt.Errorf("achievement %s: %w", id, ErrNotFound)
	}

	now := s.now()
	s.achievements[idx].Unlock(now)
	seq := s.release()

	s.emit(seq, Event{Kind: EventAchievementUnlocked, ID: id, At: now})

	return nil
}

func (s *Store) Achievements() achievements.Achievements {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.achievements.Clone()
}

func (s *Store) SetUser(u *user.User) {
	s.mu.Lock()
	s.user = u.Clone()
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventUserChanged, At: now})
}

func (s *Store) User() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user.Clone()
}

func (s *Store) SetTheme(t user.Theme) {
	s.mu.Lock()
	s.theme = t
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventThemeChanged, At: now})
}

func (s *Store) Theme() user.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.theme
}

// SetMetrics stores the externally computed snapshot. Nil clears it.
func (s *Store) SetMetrics(m *dashboard.Metrics) {
	s.mu.Lock()
	s.metrics = cloneMetrics(m)
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventMetricsChanged, At: now})
}

func (s *Store) Metrics() *dashboard.Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneMetrics(s.metrics)
}

func (s *Store) SetInsights(list []dashboard.Insight) {
	s.mu.Lock()
	s.insights = slices.Clone(list)
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventInsightsChanged, At: now})
}

func (s *Store) Insights() []dashboard.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.insights)
}

func cloneAgreements(list []agreement.Agreement) []agreement.Agreement {
	res := make([]agreement.Agreement, len(list))
	for i := range list {
		res[i] = list[i].Clone()
	}

	return res
}

func cloneMetrics(m *dashboard.Metrics) *dashboard.Metrics {
	if m == nil {
		return nil
	}

	c := m.Clone()
	return &c
}
