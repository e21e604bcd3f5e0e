package persistence

import (
	"fmt"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dealflow-labs/sponsorship-board/internal/config"
)

// Open connects to the configured database. Postgres is the production driver;
// sqlite serves local runs and the CLI.
func Open(cfg config.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSqlite:
		dialector = gormsqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	ps, err := db.DB()
	if err != nil {
		return nil, err
	}
	ps.SetMaxOpenConns(cfg.MaxOpenConnections)

	if cfg.Debug {
		db = db.Debug()
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AgreementRow{}, &AchievementRow{}, &ProfileRow{}, &MetaRow{})
}
