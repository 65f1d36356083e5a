package controllers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notify-center-api/models"
	"notify-center-api/services"
	"notify-center-api/utils"
)

// TriggerController handles the trigger webhook and the variable
// diagnostics endpoint.
type TriggerController struct {
	queue   *services.NotificationQueue
	history *services.TriggerHistoryService
}

func NewTriggerController(queue *services.NotificationQueue, history *services.TriggerHistoryService) *TriggerController {
	return &TriggerController{queue: queue, history: history}
}

// Fire accepts a trigger call from the source-control server. The call is
// parsed, queued and acknowledged immediately; the response means
// "accepted", not "delivered".
func (tc *TriggerController) Fire(c *gin.Context) {
	triggerType := utils.SanitizeInput(c.Param("type"))
	if triggerType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trigger type is required"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	call, err := models.ParseTriggerCall(body, triggerType)
	if err != nil {
		log.Printf("Error while parsing trigger call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trigger payload"})
		return
	}

	if err := tc.queue.Enqueue(call); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue trigger call"})
		return
	}

	c.String(http.StatusOK, "Trigger ok")
}

// Vars returns the environment variables recorded for the most recent call
// of a trigger type, plus a synthetic Input entry from the latest history
// record. Requires an authenticated caller.
func (tc *TriggerController) Vars(c *gin.Context) {
	triggerType := strings.TrimSpace(c.Param("type"))
	if triggerType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trigger type is required"})
		return
	}

	vars, err := tc.history.Variables(triggerType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trigger variables"})
		return
	}
	if len(vars) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "No variables recorded!"})
		return
	}

	type keyValue struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	values := make([]keyValue, 0, len(vars)+1)
	for _, v := range vars {
		values = append(values, keyValue{Key: v.Variable, Value: v.Value})
	}

	latest, err := tc.history.Latest(triggerType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trigger history"})
		return
	}
	if latest != nil && strings.TrimSpace(latest.Input) != "" {
		values = append(values, keyValue{Key: "Input (Type: string[])", Value: latest.Input})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "values": values})
}
