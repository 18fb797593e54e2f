package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// setFlag updates one boolean column and updated_at with a single UPDATE.
// extra holds additional assignments for the same statement. When no row has
// the id, gorm.ErrRecordNotFound is returned.
func setFlag(ctx context.Context, db *gorm.DB, model interface{}, id uint64, column string, value bool, extra map[string]interface{}) (time.Time, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	updates := map[string]interface{}{
		column:       value,
		"updated_at": now,
	}
	for k, v := range extra {
		updates[k] = v
	}

	result := db.WithContext(ctx).Model(model).Where("id = ?", id).UpdateColumns(updates)
	if result.Error != nil {
		return time.Time{}, result.Error
	}
	if result.RowsAffected == 0 {
		return time.Time{}, gorm.ErrRecordNotFound
	}

	return now, nil
}
