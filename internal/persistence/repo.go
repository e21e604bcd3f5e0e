package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	versions "github.com/hashicorp/go-version"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

const (
	// SchemaVersion is written with every save.
	SchemaVersion = "1.1.0"

	supportedSchemas = ">= 1.0.0, < 2.0.0"
	metaRowID        = 1
	insertBatchSize  = 100
)

var ErrIncompatibleSchema = errors.New("incompatible schema version")

type Repo struct {
	db *gorm.DB

	supported versions.Constraints
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{
		db:        db,
		supported: versions.MustConstraints(versions.NewConstraint(supportedSchemas)),
	}
}

// Save replaces the whole persisted state in one transaction.
func (r *Repo) Save(ctx context.Context, p store.Persisted) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&AgreementRow{}).Error; err != nil {
			return fmt.Errorf("clear agreements: %w", err)
		}

		if len(p.Agreements) > 0 {
			rows := make([]AgreementRow, 0, len(p.Agreements))
			for i, a := range p.Agreements {
				rows = append(rows, newAgreementRow(i, a))
			}

			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert agreements: %w", err)
			}
		}

		if err := tx.Where("1 = 1").Delete(&AchievementRow{}).Error; err != nil {
			return fmt.Errorf("clear achievements: %w", err)
		}

		if len(p.Achievements) > 0 {
			rows := make([]AchievementRow, 0, len(p.Achievements))
			for i, a := range p.Achievements {
				rows = append(rows, newAchievementRow(i, a))
			}

			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert achievements: %w", err)
			}
		}

		profile := ProfileRow{
			ID:    profileRowID,
			User:  p.User,
			Theme: string(p.Theme),
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&profile).Error; err != nil {
			return fmt.Errorf("store profile: %w", err)
		}

		meta := MetaRow{
			ID:            metaRowID,
			SchemaVersion: SchemaVersion,
			SavedAt:       time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&meta).Error; err != nil {
			return fmt.Errorf("store meta: %w", err)
		}

		return nil
	})
}

// Load returns the persisted state. The boolean is false when nothing has been
// saved yet.
func (r *Repo) Load(ctx context.Context) (store.Persisted, bool, error) {
	db := r.db.WithContext(ctx)

	var meta MetaRow
	err := db.Where("id = ?", metaRowID).Take(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.Persisted{}, false, nil
	}
	if err != nil {
		return store.Persisted{}, false, fmt.Errorf("get state meta: %w", err)
	}

	if err = r.checkSchema(meta.SchemaVersion); err != nil {
		return store.Persisted{}, false, err
	}

	var agreementRows []AgreementRow
	if err = db.Order("position").Find(&agreementRows).Error; err != nil {
		return store.Persisted{}, false, fmt.Errorf("get agreements: %w", err)
	}

	var achievementRows []AchievementRow
	if err = db.Order("position").Find(&achievementRows).Error; err != nil {
		return store.Persisted{}, false, fmt.Errorf("get achievements: %w", err)
	}

	var profile ProfileRow
	err = db.Where("id = ?", profileRowID).Take(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return store.Persisted{}, false, fmt.Errorf("get profile: %w", err)
	}

	res := store.Persisted{
		User:         profile.User,
		Theme:        user.Theme(profile.Theme),
		Agreements:   make([]agreement.Agreement, 0, len(agreementRows)),
		Achievements: make(achievements.Achievements, 0, len(achievementRows)),
	}
	for _, row := range agreementRows {
		res.Agreements = append(res.Agreements, row.Payload)
	}
	for _, row := range achievementRows {
		res.Achievements = append(res.Achievements, row.achievement())
	}

	return res, true, nil
}

func (r *Repo) checkSchema(raw string) error {
	v, err := versions.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIncompatibleSchema, raw, err)
	}

	if !r.supported.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleSchema, v, r.supported)
	}

	return nil
}
