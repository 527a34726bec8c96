package controllers

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddEditorRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	MiddleName  *string `json:"middle_name"`
	LastName    string  `json:"last_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Institution *string `json:"institution"`
	JournalID   int     `json:"journal_id" binding:"required"`
}

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatedPassword() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(b)
}

// AddEditor provisions an editor account for a journal and returns the
// generated credentials. A previously assigned editor is replaced, account
// and all.
func AddEditor(c *gin.Context) {
	var req AddEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}
	req.Email = strings.ToLower(req.Email)

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Editor already exists"})
		return
	}
	if err := config.DB.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number already exists"})
		return
	}

	var journal models.Journal
	if err := config.DB.Where("journal_id = ?", req.JournalID).First(&journal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal not found"})
		return
	}

	password := generatedPassword()
	userName := fmt.Sprintf("%s%d", strings.ToLower(req.FirstName), rand.Intn(1000))

	hash, err := HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Editor addition failed", "error": err.Error()})
		return
	}

	now := time.Now()
	editor := models.User{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		UserName:      userName,
		Email:         req.Email,
		EmailVerified: true,
		PhoneNumber:   req.PhoneNumber,
		Institution:   req.Institution,
		Password:      hash,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if journal.EditorID != nil {
			if err := tx.Where("user_id = ?", *journal.EditorID).Delete(&models.User{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&editor).Error; err != nil {
			return err
		}
		if err := grantRole(tx, &editor, models.RoleEditor); err != nil {
			return err
		}
		return tx.Model(&journal).Updates(map[string]interface{}{
			"editor_id": editor.UserID,
			"update_at": now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Editor addition failed", "error": err.Error()})
		return
	}

	// Credentials go out by mail too; the response stays authoritative if
	// SMTP is down.
	go func() {
		body := fmt.Sprintf("<p>Your editor account for <b>%s</b> is ready.</p><p>Username: %s<br>Password: %s</p>",
			journal.Title, userName, password)
		if err := config.SendMail([]string{editor.Email}, "Editor account created", body); err != nil {
			log.Printf("editor credential mail to %s failed: %v", editor.Email, err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Editor added successfully",
		"data":    gin.H{"password": password, "user_name": userName},
	})
}

// RemoveEditor detaches and deletes a journal's editor account.
func RemoveEditor(c *gin.Context) {
	journalID := c.Param("journalId")

	var journal models.Journal
	if err := config.DB.Where("journal_id = ?", journalID).First(&journal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if journal.EditorID != nil {
			if err := tx.Where("user_id = ?", *journal.EditorID).Delete(&models.User{}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&journal).Update("editor_id", nil).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Editor removal failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Editor removed successfully"})
}
