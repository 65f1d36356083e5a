package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notify-center-api/config"
	"notify-center-api/models"
	"notify-center-api/services"
)

// GetStats returns an overview for the dashboard: how often each trigger
// fired, how many notifications each channel sent and failed, and the rule
// count.
func GetStats(c *gin.Context) {
	triggerStats, err := services.NewTriggerHistoryService(nil).Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trigger stats"})
		return
	}

	channelStats, err := services.NewNotificationHistoryService(nil).Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification stats"})
		return
	}

	var ruleCount int64
	if err := config.DB.Model(&models.NotificationRule{}).Count(&ruleCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count rules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"triggers":      triggerStats,
		"notifications": channelStats,
		"rule_count":    ruleCount,
	})
}

// GetHistory returns the most recent notification history entries.
func GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := services.NewNotificationHistoryService(nil).Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// GetTriggers returns the trigger types seen so far with their call counts.
func GetTriggers(c *gin.Context) {
	stats, err := services.NewTriggerHistoryService(nil).Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trigger types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"triggers": stats})
}
