package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

type migration struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

// Migrations are additive only: a version may create tables, columns and
// indexes, never drop or rewrite existing records.
var migrations = []migration{
	{
		version: 1,
		name:    "users_profiles_reports",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.User{}, &models.Profile{}, &models.Report{})
		},
	},
	{
		version: 2,
		name:    "streaks_badges",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.Streak{}, &models.Badge{})
		},
	},
	{
		version: 3,
		name:    "meals_cycles_tasks_key_values",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.Meal{}, &models.Cycle{}, &models.Task{}, &models.KeyValue{})
		},
	},
}

// SchemaVersion is the version the binary expects after Migrate.
func SchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// Migrate applies every migration not yet recorded in schema_versions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaVersion{}); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&models.SchemaVersion{}).Where("version = ?", m.version).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.apply(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaVersion{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

// CurrentVersion returns the highest applied migration, or 0.
func CurrentVersion(db *gorm.DB) (int, error) {
	var v models.SchemaVersion
	err := db.Order("version desc").Limit(1).Find(&v).Error
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v.Version, nil
}
