package models

import (
	"time"

	"github.com/google/uuid"
)

// Notifier channel type identifiers.
const (
	NotifierTypeSMTP = "smtp"
)

// NotifierConfig is one configured notifier channel instance. All channel
// types share the table; Type selects the implementation and the channel
// reads only the columns it cares about.
type NotifierConfig struct {
	ID          string     `gorm:"primaryKey;column:notifier_id" json:"notifier_id"`
	DisplayName string     `gorm:"column:display_name" json:"display_name"`
	Type        string     `gorm:"column:type" json:"type"`
	Version     string     `gorm:"column:version" json:"version"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`

	// SMTP settings
	Host        string `gorm:"column:host" json:"host"`
	Port        int    `gorm:"column:port" json:"port"`
	EnableSSL   bool   `gorm:"column:enable_ssl" json:"enable_ssl"`
	SenderMail  string `gorm:"column:sender_mail" json:"sender_mail"`
	SenderAlias string `gorm:"column:sender_alias" json:"sender_alias"`
	Username    string `gorm:"column:username" json:"username"`
	Password    string `gorm:"column:password" json:"-"`
}

func (NotifierConfig) TableName() string { return "notifiers" }

// NewNotifierConfig creates a channel configuration with a fresh id.
func NewNotifierConfig(displayName, channelType string) *NotifierConfig {
	now := time.Now()
	return &NotifierConfig{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Type:        channelType,
		Version:     "1.0",
		CreateAt:    &now,
	}
}
