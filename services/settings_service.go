package services

import (
	"errors"

	"gorm.io/gorm"

	"notify-center-api/config"
	"notify-center-api/models"
)

// SettingsService reads the app settings row-singleton. The pipeline only
// ever reads; writes belong to admin tooling.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	if db == nil {
		db = config.DB
	}
	return &SettingsService{db: db}
}

// Get returns the settings row, or defaults when none was created yet.
func (s *SettingsService) Get() (*models.AppSetting, error) {
	var setting models.AppSetting
	err := s.db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.AppSetting{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
