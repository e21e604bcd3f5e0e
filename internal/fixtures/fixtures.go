package fixtures

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/dealflow-labs/sponsorship-board/internal/achievements"
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/dashboard"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

var ErrDuplicateID = errors.New("duplicate agreement id")

// Bundle is the demo data loaded into an empty store.
type Bundle struct {
	User         *user.User                `yaml:"user"`
	Theme        user.Theme                `yaml:"theme"`
	Agreements   []agreement.Agreement     `yaml:"agreements"`
	Metrics      *dashboard.Metrics        `yaml:"metrics"`
	Insights     []dashboard.Insight       `yaml:"insights"`
	Achievements achievements.Achievements `yaml:"achievements"`
}

func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}

	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}

	return b, nil
}

func Parse(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if err := b.normalize(); err != nil {
		return nil, err
	}

	return &b, nil
}

// normalize fills missing identities and keeps the timestamps ordered.
func (b *Bundle) normalize() error {
	if b.Theme == "" {
		b.Theme = user.ThemeLight
	}
	if _, err := user.ParseTheme(string(b.Theme)); err != nil {
		return err
	}

	if b.User != nil {
		if err := b.User.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(b.Agreements))
	for i := range b.Agreements {
		a := &b.Agreements[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = struct{}{}

		if !a.Status.Valid() {
			return fmt.Errorf("agreement %s: %w: %q", a.ID, agreement.ErrInvalidStatus, a.Status)
		}
		if a.UpdatedAt.Before(a.CreatedAt) {
			a.UpdatedAt = a.CreatedAt
		}
	}

	for _, a := range b.Achievements {
		if _, err := achievements.ParseCategory(string(a.Category)); err != nil {
			return fmt.Errorf("achievement %s: %w", a.ID, err)
		}
	}

	return nil
}

// Persisted returns the part of the bundle that is stored in the database.
func (b *Bundle) Persisted() store.Persisted {
	return store.Persisted{
		User:         b.User.Clone(),
		Theme:        b.Theme,
		Agreements:   b.Agreements,
		Achievements: b.Achievements.Clone(),
	}
}

// Apply loads the bundle into the store. When restored is true the persisted
// collections already came from the database and only the transient dashboard
// data is taken from the bundle.
func (b *Bundle) Apply(s *store.Store, restored bool) {
	if !restored {
		s.Restore(b.Persisted())
		log.Info().Int("agreements", len(b.Agreements)).Msg("fixtures applied")
	}

	s.SetMetrics(b.Metrics)
	s.SetInsights(b.Insights)
}
