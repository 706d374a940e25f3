package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartCleanup schedules a daily job deleting system_logs older than
// retentionDays. Stop the returned cron on shutdown.
func StartCleanup(db *gorm.DB, retentionDays int) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc("@daily", func() {
		if _, err := PurgeOlderThan(db, retentionDays, time.Now()); err != nil {
			slog.Error("log cleanup failed", "component", "logging", "error", err)
		}
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// PurgeOlderThan deletes system_logs recorded more than retentionDays before now.
func PurgeOlderThan(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.UTC().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
