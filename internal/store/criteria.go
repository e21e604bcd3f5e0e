package store

import (
	"slices"
	"time"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
)

type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Selection is the UI state kept next to the data: the focused agreement and the
// date range picked on the board. The projection ignores the date range.
type Selection struct {
	AgreementID *string   `json:"agreementId,omitempty"`
	DateRange   DateRange `json:"dateRange"`
}

func (s Selection) clone() Selection {
	c := s
	if s.AgreementID != nil {
		id := *s.AgreementID
		c.AgreementID = &id
	}
	if s.DateRange.From != nil {
		from := *s.DateRange.From
		c.DateRange.From = &from
	}
	if s.DateRange.To != nil {
		to := *s.DateRange.To
		c.DateRange.To = &to
	}

	return c
}

// SetSearchQuery replaces the search text verbatim.
func (s *Store) SetSearchQuery(q string) {
	s.UpdateCriteria(func(c *board.Criteria) {
		c.Search = q
	})
}

// SetStatusFilter replaces the status inclusion set. An empty set means no restriction.
func (s *Store) SetStatusFilter(list []agreement.Status) {
	s.UpdateCriteria(func(c *board.Criteria) {
		c.Statuses = slices.Clone(list)
	})
}

// SetPriorityFilter replaces the priority inclusion set. An empty set means no restriction.
func (s *Store) SetPriorityFilter(list []agreement.Priority) {
	s.UpdateCriteria(func(c *board.Criteria) {
		c.Priorities = slices.Clone(list)
	})
}

// SetCriteria replaces search text and both inclusion sets in one mutation.
func (s *Store) SetCriteria(c board.Criteria) {
	s.UpdateCriteria(func(cur *board.Criteria) {
		*cur = c.Clone()
	})
}

// UpdateCriteria edits the criteria in place as one mutation. fn runs under the
// write lock and must not call back into the store.
func (s *Store) UpdateCriteria(fn func(*board.Criteria)) {
	s.mu.Lock()
	fn(&s.criteria)
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventCriteriaChanged, At: now})
}

func (s *Store) Criteria() board.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.criteria.Clone()
}

// SetSelectedAgreement focuses an agreement; an empty id clears the selection.
func (s *Store) SetSelectedAgreement(id string) {
	s.updateSelection(func(sel *Selection) {
		if id == "" {
			sel.AgreementID = nil
			return
		}

		sel.AgreementID = &id
	})
}

func (s *Store) SetDateRange(r DateRange) {
	s.updateSelection(func(sel *Selection) {
		sel.DateRange = r
	})
}

func (s *Store) updateSelection(fn func(*Selection)) {
	s.mu.Lock()
	fn(&s.selection)
	s.selection = s.selection.clone()
	now := s.now()
	seq := s.release()

	s.emit(seq, Event{Kind: EventSelectionChanged, At: now})
}

func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selection.clone()
}

// Board projects the current agreements with the stored criteria.
func (s *Store) Board() board.Board {
	s.mu.RLock()
	list := cloneAgreements(s.agreements)
	criteria := s.criteria.Clone()
	s.mu.RUnlock()

	return board.Project(list, criteria)
}
