package persistence

import (
	"time"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

const profileRowID = 1

type AgreementRow struct {
	ID       string `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Status   string `gorm:"index"`
	Title    string
	Payload  agreement.Agreement `gorm:"type:jsonb;serializer:json"`
}

func (AgreementRow) TableName() string {
	return "agreements"
}

type AchievementRow struct {
	ID          string `gorm:"primaryKey"`
	Position    int    `gorm:"index"`
	Title       string
	Description string
	Icon        string
	Unlocked    bool
	UnlockedAt  *time.Time
	Progress    int
	MaxProgress int
	Category    string
}

func (AchievementRow) TableName() string {
	return "achievements"
}

type ProfileRow struct {
	ID    int        `gorm:"primaryKey;autoIncrement:false"`
	User  *user.User `gorm:"type:jsonb;serializer:json"`
	Theme string
}

func (ProfileRow) TableName() string {
	return "profiles"
}

type MetaRow struct {
	ID            int `gorm:"primaryKey;autoIncrement:false"`
	SchemaVersion string
	SavedAt       time.Time
}

func (MetaRow) TableName() string {
	return "state_meta"
}

func newAgreementRow(position int, a agreement.Agreement) AgreementRow {
	return AgreementRow{
		ID:       a.ID,
		Position: position,
		Status:   string(a.Status),
		Title:    a.Title,
		Payload:  a,
	}
}

func newAchievementRow(position int, a achievements.Achievement) AchievementRow {
	return AchievementRow{
		ID:          a.ID,
		Position:    position,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Unlocked:    a.Unlocked,
		UnlockedAt:  a.UnlockedAt,
		Progress:    a.Progress,
		MaxProgress: a.MaxProgress,
		Category:    string(a.Category),
	}
}

func (r AchievementRow) achievement() achievements.Achievement {
	var unlockedAt *time.Time
	if r.UnlockedAt != nil {
		at := r.UnlockedAt.UTC()
		unlockedAt = &at
	}

	return achievements.Achievement{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Unlocked:    r.Unlocked,
		UnlockedAt:  unlockedAt,
		Progress:    r.Progress,
		MaxProgress: r.MaxProgress,
		Category:    achievements.Category(r.Category),
	}
}
