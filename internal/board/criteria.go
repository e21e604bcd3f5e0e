package board

import (
	"fmt"
	"slices"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
)

// Criteria are the active search and filter settings of the board.
type Criteria struct {
	Search     string               `json:"search"`
	Statuses   []agreement.Status   `json:"statuses"`
	Priorities []agreement.Priority `json:"priorities"`
}

func (c Criteria) Filters() []Filter {
	return []Filter{
		SearchFilter{Query: c.Search},
		StatusFilter{Statuses: c.Statuses},
		PriorityFilter{Priorities: c.Priorities},
	}
}

func (c Criteria) Clone() Criteria {
	return Criteria{
		Search:     c.Search,
		Statuses:   slices.Clone(c.Statuses),
		Priorities: slices.Clone(c.Priorities),
	}
}

// ParseStatuses converts raw values, rejecting anything outside the pipeline.
func ParseStatuses(raw []string) ([]agreement.Status, error) {
	res := make([]agreement.Status, 0, len(raw))
	for _, val := range raw {
		s, err := agreement.ParseStatus(val)
		if err != nil {
			return nil, fmt.Errorf("parse status filter: %w", err)
		}

		res = append(res, s)
	}

	return res, nil
}

func ParsePriorities(raw []string) ([]agreement.Priority, error) {
	res := make([]agreement.Priority, 0, len(raw))
	for _, val := range raw {
		p, err := agreement.ParsePriority(val)
		if err != nil {
			return nil, fmt.Errorf("parse priority filter: %w", err)
		}

		res = append(res, p)
	}

	return res, nil
}
