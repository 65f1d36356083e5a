package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RetentionService prunes old history rows on a daily schedule. The window
// comes from the app settings (history_retention_days); zero keeps history
// forever.
type RetentionService struct {
	settings       *SettingsService
	triggerHistory *TriggerHistoryService
	notifyHistory  *NotificationHistoryService
	cron           *cron.Cron
}

func NewRetentionService(db *gorm.DB) *RetentionService {
	return &RetentionService{
		settings:       NewSettingsService(db),
		triggerHistory: NewTriggerHistoryService(db),
		notifyHistory:  NewNotificationHistoryService(db),
	}
}

// Start schedules the daily sweep.
func (s *RetentionService) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@daily", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish.
func (s *RetentionService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep removes history rows older than the retention window.
func (s *RetentionService) Sweep() {
	setting, err := s.settings.Get()
	if err != nil {
		log.Printf("History retention sweep skipped: %v", err)
		return
	}
	if setting.HistoryRetentionDays <= 0 {
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -setting.HistoryRetentionDays)

	removedTriggers, err := s.triggerHistory.PurgeOlderThan(cutoff)
	if err != nil {
		log.Printf("Failed to purge trigger history: %v", err)
	}
	removedNotifications, err := s.notifyHistory.PurgeOlderThan(cutoff)
	if err != nil {
		log.Printf("Failed to purge notification history: %v", err)
	}

	if removedTriggers > 0 || removedNotifications > 0 {
		log.Printf("History retention sweep removed %d trigger and %d notification entries", removedTriggers, removedNotifications)
	}
}
