package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the directory and listing indexes AutoMigrate cannot express
// through struct tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Members directory filters
		{"members", "idx_members_name", "last_name, first_name"},
		{"members", "idx_members_company", "company"},
		{"members", "idx_members_location", "location"},

		// Newest-first listings
		{"events", "idx_events_created_at", "created_at"},
		{"news", "idx_news_created_at", "created_at"},
		{"projects", "idx_projects_created_at", "created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// MigrateDatabase runs AutoMigrate and then the extra indexes.
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
