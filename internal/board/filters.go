package board

import (
	"slices"
	"strings"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
)

type Filter interface {
	Match(agreement.Agreement) bool
}

// SearchFilter matches a case-insensitive substring of the title, sponsor name or
// sponsor company. An empty query matches everything.
type SearchFilter struct {
	Query string
}

func (f SearchFilter) Match(a agreement.Agreement) bool {
	if f.Query == "" {
		return true
	}

	q := strings.ToLower(f.Query)
	for _, field := range []string{a.Title, a.Sponsor.Name, a.Sponsor.Company} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	return false
}

// StatusFilter is an inclusion set. An empty set does not restrict.
type StatusFilter struct {
	Statuses []agreement.Status
}

func (f StatusFilter) Match(a agreement.Agreement) bool {
	return len(f.Statuses) == 0 || slices.Contains(f.Statuses, a.Status)
}

// PriorityFilter is an inclusion set. An empty set does not restrict.
type PriorityFilter struct {
	Priorities []agreement.Priority
}

func (f PriorityFilter) Match(a agreement.Agreement) bool {
	return len(f.Priorities) == 0 || slices.Contains(f.Priorities, a.Priority)
}

// Apply keeps the agreements accepted by every filter, in their original order.
func Apply(list []agreement.Agreement, filters []Filter) []agreement.Agreement {
	res := make([]agreement.Agreement, 0, len(list))
	for _, a := range list {
		if matchAll(a, filters) {
			res = append(res, a)
		}
	}

	return res
}

func matchAll(a agreement.Agreement, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(a) {
			return false
		}
	}

	return true
}
