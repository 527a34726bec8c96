package controllers

import (
	"net/http"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddJournalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func AddJournal(c *gin.Context) {
	var req AddJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	now := time.Now()
	journal := models.Journal{
		Title:       req.Title,
		Description: req.Description,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&journal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal addition failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Journal added successfully", "data": journal})
}

// DeleteJournal removes a journal and, when one is assigned, its editor
// account with it.
func DeleteJournal(c *gin.Context) {
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
		return tx.Delete(&journal).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal deletion failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal deleted successfully"})
}

func GetJournalList(c *gin.Context) {
	var journals []models.Journal
	if err := config.DB.
		Preload("Editor", func(db *gorm.DB) *gorm.DB {
			return db.Select("user_id", "first_name", "last_name", "email")
		}).
		Order("journal_id").
		Find(&journals).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal data retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal data retrieved successfully", "data": journals})
}
