package services

import (
	"gorm.io/gorm"

	"notify-center-api/config"
	"notify-center-api/models"
)

// RuleService loads notification rules for the dispatcher.
type RuleService struct {
	db *gorm.DB
}

func NewRuleService(db *gorm.DB) *RuleService {
	if db == nil {
		db = config.DB
	}
	return &RuleService{db: db}
}

// ActiveByTrigger returns every active rule for the trigger type with its
// notifiers, recipients and role memberships eagerly loaded, so dispatch
// needs no further round-trips.
func (s *RuleService) ActiveByTrigger(trigger string) ([]models.NotificationRule, error) {
	var rules []models.NotificationRule
	err := s.db.
		Preload("Notifiers").
		Preload("Recipients.User").
		Preload("Recipients.Role.Users").
		Where("`trigger` = ? AND is_active = ?", trigger, true).
		Order("create_at").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
