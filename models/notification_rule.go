package models

import (
	"time"

	"github.com/google/uuid"
)

// Message body types.
const (
	BodyTypePlain = "plain"
	BodyTypeHTML  = "html"
)

// NotificationRule is a standing subscription: when a trigger of the given
// type fires and the optional filter passes, the rendered message is sent
// through every attached notifier to every resolved recipient.
type NotificationRule struct {
	ID                string     `gorm:"primaryKey;column:rule_id" json:"rule_id"`
	DisplayName       string     `gorm:"column:display_name" json:"display_name"`
	Trigger           string     `gorm:"column:trigger;index" json:"trigger"`
	IsActive          bool       `gorm:"column:is_active" json:"is_active"`
	AdvancedFilter    string     `gorm:"column:advanced_filter" json:"advanced_filter"`
	NotificationTitle string     `gorm:"column:notification_title" json:"notification_title"`
	NotificationBody  string     `gorm:"column:notification_body" json:"notification_body"`
	NotificationTags  string     `gorm:"column:notification_tags" json:"notification_tags"`
	BodyType          string     `gorm:"column:body_type" json:"body_type"`
	UseGlobalTemplate bool       `gorm:"column:use_global_template" json:"use_global_template"`
	OwnerID           *uint      `gorm:"column:owner_id" json:"owner_id,omitempty"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Notifiers  []NotifierConfig        `gorm:"many2many:rule_notifiers;foreignKey:ID;joinForeignKey:RuleID;References:ID;joinReferences:NotifierID" json:"notifiers,omitempty"`
	Recipients []NotificationRecipient `gorm:"foreignKey:RuleID;references:ID" json:"recipients,omitempty"`
}

func (NotificationRule) TableName() string { return "notification_rules" }

// NewNotificationRule creates an active rule with a fresh id.
func NewNotificationRule(displayName, trigger string) *NotificationRule {
	now := time.Now()
	return &NotificationRule{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Trigger:     trigger,
		IsActive:    true,
		BodyType:    BodyTypePlain,
		CreateAt:    &now,
	}
}

// NotificationRecipient attaches either one user or one role to a rule.
// Exactly one of UserID/RoleID is set; rows violating that are skipped
// during recipient resolution.
type NotificationRecipient struct {
	ID     uint   `gorm:"primaryKey;column:recipient_id" json:"recipient_id"`
	RuleID string `gorm:"column:rule_id;index" json:"rule_id"`
	UserID *uint  `gorm:"column:user_id" json:"user_id,omitempty"`
	RoleID *uint  `gorm:"column:role_id" json:"role_id,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Role *Role `gorm:"foreignKey:RoleID;references:RoleID" json:"role,omitempty"`
}

func (NotificationRecipient) TableName() string { return "notification_recipients" }
