package services

import (
	"time"

	"gorm.io/gorm"

	"notify-center-api/config"
	"notify-center-api/models"
)

// NotificationHistoryService owns the per-dispatch delivery records. One
// entry is opened per (trigger call, notifier channel) before the fan-out
// starts and closed exactly once with the final counts.
type NotificationHistoryService struct {
	db *gorm.DB
}

func NewNotificationHistoryService(db *gorm.DB) *NotificationHistoryService {
	if db == nil {
		db = config.DB
	}
	return &NotificationHistoryService{db: db}
}

// Open creates a history entry for a channel dispatch that is about to run.
func (s *NotificationHistoryService) Open(notifierName string) (*models.NotificationHistory, error) {
	entry := &models.NotificationHistory{
		Timestamp:    time.Now().UTC(),
		NotifierName: notifierName,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Close writes the final counts to an open entry.
func (s *NotificationHistoryService) Close(entry *models.NotificationHistory, success, failed int) error {
	entry.SuccessCount = success
	entry.FailedCount = failed
	return s.db.Model(entry).
		Updates(map[string]any{"success_count": success, "failed_count": failed}).Error
}

// Recent returns the newest entries, newest first.
func (s *NotificationHistoryService) Recent(limit int) ([]models.NotificationHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.NotificationHistory
	err := s.db.
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ChannelStats is the aggregate delivery outcome of one channel.
type ChannelStats struct {
	NotifierName string `json:"notifier_name"`
	SuccessCount int64  `json:"success_count"`
	FailedCount  int64  `json:"failed_count"`
}

// Stats returns total success/failure counts per channel name.
func (s *NotificationHistoryService) Stats() ([]ChannelStats, error) {
	var stats []ChannelStats
	err := s.db.
		Model(&models.NotificationHistory{}).
		Select("notifier_name, SUM(success_count) AS success_count, SUM(failed_count) AS failed_count").
		Group("notifier_name").
		Order("notifier_name").
		Scan(&stats).Error
	return stats, err
}

// PurgeOlderThan deletes entries older than the cutoff.
func (s *NotificationHistoryService) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("timestamp < ?", cutoff).Delete(&models.NotificationHistory{})
	return result.RowsAffected, result.Error
}
