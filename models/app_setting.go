package models

import "time"

// AppSetting is a row-singleton with the few global knobs the pipeline
// reads: the public base URL used in rendered mails and the history
// retention window. Admin tooling owns all writes.
type AppSetting struct {
	ID                   uint       `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	BaseURL              string     `gorm:"column:base_url" json:"base_url"`
	HistoryRetentionDays int        `gorm:"column:history_retention_days" json:"history_retention_days"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (AppSetting) TableName() string { return "app_settings" }
