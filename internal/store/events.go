package store

import (
	"time"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
)

type EventKind string

const (
	EventAgreementCreated       EventKind = "agreement.created"
	EventAgreementUpdated       EventKind = "agreement.updated"
	EventAgreementStatusChanged EventKind = "agreement.status_changed"
	EventAgreementDeleted       EventKind = "agreement.deleted"
	EventAgreementsReplaced     EventKind = "agreements.replaced"
	EventNotificationAdded      EventKind = "notification.added"
	EventNotificationRead       EventKind = "notification.read"
	EventNotificationsCleared   EventKind = "notifications.cleared"
	EventAchievementUnlocked    EventKind = "achievement.unlocked"
	EventAchievementsReplaced   EventKind = "achievements.replaced"
	EventUserChanged            EventKind = "user.changed"
	EventThemeChanged           EventKind = "theme.changed"
	EventMetricsChanged         EventKind = "metrics.changed"
	EventInsightsChanged        EventKind = "insights.changed"
	EventCriteriaChanged        EventKind = "criteria.changed"
	EventSelectionChanged       EventKind = "selection.changed"
	EventRestored               EventKind = "state.restored"
)

// Persisted reports whether the event touches the subset of state that survives restarts.
func (k EventKind) Persisted() bool {
	switch k {
	case EventAgreementCreated,
		EventAgreementUpdated,
		EventAgreementStatusChanged,
		EventAgreementDeleted,
		EventAgreementsReplaced,
		EventAchievementUnlocked,
		EventAchievementsReplaced,
		EventUserChanged,
		EventThemeChanged:
		return true
	default:
		return false
	}
}

// AffectsBoard reports whether the board projection has to be recomputed.
func (k EventKind) AffectsBoard() bool {
	switch k {
	case EventAgreementCreated,
		EventAgreementUpdated,
		EventAgreementStatusChanged,
		EventAgreementDeleted,
		EventAgreementsReplaced,
		EventCriteriaChanged,
		EventRestored:
		return true
	default:
		return false
	}
}

// Event describes one completed mutation. Agreement is a copy of the record after
// the change and is set for single-agreement events except deletion. Seq grows by
// one per mutation, and listeners always observe events in Seq order.
type Event struct {
	Seq       uint64
	Kind      EventKind
	ID        string
	At        time.Time
	Agreement *agreement.Agreement
}

// Listener is called synchronously after the mutation is visible to readers.
// Listeners may read the store but must not mutate it.
type Listener func(Event)
