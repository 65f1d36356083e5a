package models

import (
	"strings"
	"time"
)

// TriggerHistory records that a trigger call was received. Append-only.
type TriggerHistory struct {
	ID        uint      `gorm:"primaryKey;column:history_id" json:"history_id"`
	Trigger   string    `gorm:"column:trigger;index" json:"trigger"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
	Input     string    `gorm:"column:input" json:"input"`
}

func (TriggerHistory) TableName() string { return "trigger_history" }

// TriggerHistoryFrom flattens a call into its history record.
func TriggerHistoryFrom(call *TriggerCall) *TriggerHistory {
	return &TriggerHistory{
		Trigger:   call.Type,
		Timestamp: time.Now().UTC(),
		Input:     strings.Join(call.Input, "\n"),
	}
}

// TriggerVariable stores one environment variable of the most recent call of
// a trigger type. The dispatcher replaces the whole set on every call, so at
// any time there is at most one variable set per trigger type.
type TriggerVariable struct {
	ID       uint   `gorm:"primaryKey;column:variable_id" json:"variable_id"`
	Trigger  string `gorm:"column:trigger;index" json:"trigger"`
	Variable string `gorm:"column:variable" json:"variable"`
	Value    string `gorm:"column:value" json:"value"`
}

func (TriggerVariable) TableName() string { return "trigger_variables" }

// NotificationHistory is one channel's delivery outcome for one trigger
// call. Created before the fan-out starts and closed exactly once with the
// final counts.
type NotificationHistory struct {
	ID           uint      `gorm:"primaryKey;column:history_id" json:"history_id"`
	Timestamp    time.Time `gorm:"column:timestamp" json:"timestamp"`
	NotifierName string    `gorm:"column:notifier_name" json:"notifier_name"`
	SuccessCount int       `gorm:"column:success_count" json:"success_count"`
	FailedCount  int       `gorm:"column:failed_count" json:"failed_count"`
}

func (NotificationHistory) TableName() string { return "notification_history" }
