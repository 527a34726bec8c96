package controllers

import (
	"net/http"

	"journal-submission-api/config"

	"github.com/gin-gonic/gin"
)

type SendMailRequest struct {
	MailTo      string `json:"mail_to" binding:"required,email"`
	MailSubject string `json:"mail_subject" binding:"required"`
	MailHTML    string `json:"mail_html" binding:"required"`
}

// SendMail relays an HTML mail through the configured SMTP transport.
func SendMail(c *gin.Context) {
	var req SendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := config.SendMail([]string{req.MailTo}, req.MailSubject, req.MailHTML); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mail sending failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mail sent successfully"})
}
