package achievements

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryDeals        Category = "deals"
	CategoryRevenue      Category = "revenue"
	CategoryProductivity Category = "productivity"
	CategoryEngagement   Category = "engagement"
)

func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategoryDeals, CategoryRevenue, CategoryProductivity, CategoryEngagement:
		return c, nil
	default:
		return "", fmt.Errorf("unknown achievement category: %v", raw)
	}
}

type Achievement struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	Unlocked    bool       `json:"unlocked" yaml:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty" yaml:"unlockedAt,omitempty"`
	Progress    int        `json:"progress" yaml:"progress"`
	MaxProgress int        `json:"maxProgress" yaml:"maxProgress"`
	Category    Category   `json:"category" yaml:"category"`
}

// Unlock marks the achievement as reached at the given moment.
func (a *Achievement) Unlock(at time.Time) {
	a.Unlocked = true
	a.UnlockedAt = &at
}

func (a Achievement) Clone() Achievement {
	c := a
	if a.UnlockedAt != nil {
		at := *a.UnlockedAt
		c.UnlockedAt = &at
	}

	return c
}

type Achievements []Achievement

func (list Achievements) Clone() Achievements {
	if list == nil {
		return nil
	}

	res := make(Achievements, len(list))
	for i := range list {
		res[i] = list[i].Clone()
	}

	return res
}
