package migration

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrationFunc applies one schema change
type MigrationFunc func(db *gorm.DB) error

// appliedMigration tracks which named migrations have run
type appliedMigration struct {
	ID        uint   `gorm:"primary_key"`
	Name      string `gorm:"unique;not null"`
	AppliedAt time.Time
}

func (appliedMigration) TableName() string {
	return "schema_migrations"
}

var registry = map[string]MigrationFunc{}

// Register adds a named migration. Called from init() in the
// migrations package; names must be unique and sort in apply order.
func Register(name string, fn MigrationFunc) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("migration %q registered twice", name)
	}
	registry[name] = fn
	return nil
}

// Run applies all registered migrations that have not run yet, in name
// order, recording each in schema_migrations.
func Run(db *gorm.DB, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return err
	}

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var count int64
		if err := db.Model(&appliedMigration{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		log.WithField("migration", name).Info("applying migration")
		if err := registry[name](db); err != nil {
			return fmt.Errorf("migration %q failed: %w", name, err)
		}
		if err := db.Create(&appliedMigration{Name: name, AppliedAt: time.Now()}).Error; err != nil {
			return err
		}
	}
	return nil
}
