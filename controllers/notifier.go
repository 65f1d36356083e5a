package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notify-center-api/models"
	"notify-center-api/notifiers"
	"notify-center-api/utils"
)

// NotifierController exposes the registered channel types and an SMTP
// configuration probe.
type NotifierController struct {
	registry *notifiers.Registry
	smtp     *notifiers.SMTPNotifier
}

func NewNotifierController(registry *notifiers.Registry, smtp *notifiers.SMTPNotifier) *NotifierController {
	return &NotifierController{registry: registry, smtp: smtp}
}

// GetTypes lists all registered notifier channel types.
func (nc *NotifierController) GetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": nc.registry.List()})
}

type smtpTestRequest struct {
	Host        string `json:"host" binding:"required"`
	Port        int    `json:"port"`
	EnableSSL   bool   `json:"enable_ssl"`
	SenderMail  string `json:"sender_mail" binding:"required"`
	SenderAlias string `json:"sender_alias"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	To          string `json:"to" binding:"required"`
}

// TestSMTP sends a probe mail with the submitted configuration, so an admin
// can verify SMTP settings before attaching them to a rule.
func (nc *NotifierController) TestSMTP(c *gin.Context) {
	var req smtpTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.ValidateEmail(req.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient address"})
		return
	}

	cfg := models.NewNotifierConfig("SMTP Test", models.NotifierTypeSMTP)
	cfg.Host = req.Host
	cfg.Port = req.Port
	cfg.EnableSSL = req.EnableSSL
	cfg.SenderMail = req.SenderMail
	cfg.SenderAlias = req.SenderAlias
	cfg.Username = req.Username
	cfg.Password = req.Password

	if err := nc.smtp.SendTestMail(cfg, req.To); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Test mail sent"})
}
