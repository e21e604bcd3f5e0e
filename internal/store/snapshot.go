package store

import (
	"slices"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/dashboard"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

// Persisted is the subset of state that outlives the process.
type Persisted struct {
	User         *user.User                `json:"user"`
	Theme        user.Theme                `json:"theme"`
	Agreements   []agreement.Agreement     `json:"agreements"`
	Achievements achievements.Achievements `json:"achievements"`
}

// State is the complete content of the store.
type State struct {
	Persisted

	Notifications []notification.Notification `json:"notifications"`
	Metrics       *dashboard.Metrics          `json:"metrics"`
	Insights      []dashboard.Insight         `json:"insights"`
	Criteria      board.Criteria              `json:"criteria"`
	Selection     Selection                   `json:"selection"`
}

func (s *Store) Snapshot() Persisted {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

func (s *Store) snapshot() Persisted {
	return Persisted{
		User:         s.user.Clone(),
		Theme:        s.theme,
		Agreements:   cloneAgreements(s.agreements),
		Achievements: s.achievements.Clone(),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]notification.Notification, len(s.notifications))
	copy(notifications, s.notifications)

	return State{
		Persisted:     s.snapshot(),
		Notifications: notifications,
		Metrics:       cloneMetrics(s.metrics),
		Insights:      slices.Clone(s.insights),
		Criteria:      s.criteria.Clone(),
		Selection:     s.selection.clone(),
	}
}

// Restore loads a previously persisted subset, replacing the four collections it covers.
func (s *Store) Restore(p Persisted) {
	s.mu.Lock()
	s.user = p.User.Clone()
	s.theme = p.Theme
	if s.theme == "" {
		s.theme = user.ThemeLight
	}
	s.agreements = cloneAgreements(p.Agreements)
	s.achievements = p.Achievements.Clone()
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventRestored, At: now})
}
