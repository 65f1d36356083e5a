package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"notify-center-api/config"
	"notify-center-api/models"
)

// TriggerHistoryService records received trigger calls and serves the
// diagnostics views over them.
type TriggerHistoryService struct {
	db *gorm.DB
}

func NewTriggerHistoryService(db *gorm.DB) *TriggerHistoryService {
	if db == nil {
		db = config.DB
	}
	return &TriggerHistoryService{db: db}
}

// Record appends a TriggerHistory entry for the call and replaces the stored
// variable set for the call's trigger type. Runs in one transaction so a
// reader never observes a partially replaced set.
func (s *TriggerHistoryService) Record(call *models.TriggerCall) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("`trigger` = ?", call.Type).Delete(&models.TriggerVariable{}).Error; err != nil {
			return err
		}

		if err := tx.Create(models.TriggerHistoryFrom(call)).Error; err != nil {
			return err
		}

		if len(call.EnvironmentVars) == 0 {
			return nil
		}
		variables := make([]models.TriggerVariable, 0, len(call.EnvironmentVars))
		for name, value := range call.EnvironmentVars {
			variables = append(variables, models.TriggerVariable{
				Trigger:  call.Type,
				Variable: name,
				Value:    value,
			})
		}
		return tx.Create(&variables).Error
	})
}

// Variables returns the stored variable set of the most recent call of the
// trigger type, ordered by variable name.
func (s *TriggerHistoryService) Variables(trigger string) ([]models.TriggerVariable, error) {
	var vars []models.TriggerVariable
	err := s.db.
		Where("`trigger` = ?", trigger).
		Order("variable").
		Find(&vars).Error
	return vars, err
}

// Latest returns the newest TriggerHistory entry for the trigger type, or
// nil when the trigger has never fired.
func (s *TriggerHistoryService) Latest(trigger string) (*models.TriggerHistory, error) {
	var entry models.TriggerHistory
	err := s.db.
		Where("`trigger` = ?", trigger).
		Order("timestamp DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// TriggerStats is the call count of one trigger type.
type TriggerStats struct {
	Trigger string `json:"trigger"`
	Count   int64  `json:"count"`
}

// Stats returns the call count per trigger type.
func (s *TriggerHistoryService) Stats() ([]TriggerStats, error) {
	var stats []TriggerStats
	err := s.db.
		Model(&models.TriggerHistory{}).
		Select("`trigger`, COUNT(*) AS count").
		Group("`trigger`").
		Order("`trigger`").
		Scan(&stats).Error
	return stats, err
}

// PurgeOlderThan deletes TriggerHistory rows older than the cutoff and
// returns the number removed. Variable sets are kept: they always describe
// the latest call of each type.
func (s *TriggerHistoryService) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("timestamp < ?", cutoff).Delete(&models.TriggerHistory{})
	return result.RowsAffected, result.Error
}
