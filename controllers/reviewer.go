package controllers

import (
	"net/http"
	"strings"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/utils"

	"github.com/gin-gonic/gin"
)

type ReviewerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Affiliation string `json:"affiliation" binding:"required"`
}

// AddReviewer puts one person on the roster. An existing account with the
// same email gets the reviewer role immediately.
func AddReviewer(c *gin.Context) {
	var req ReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}
	req.Email = strings.ToLower(req.Email)

	var existing models.Reviewer
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reviewer already exists"})
		return
	}

	now := time.Now()
	reviewer := models.Reviewer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Affiliation: req.Affiliation,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&reviewer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer addition failed", "error": err.Error()})
		return
	}

	if err := grantRoleByEmail(config.DB, req.Email, models.RoleReviewer); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer addition failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Reviewer added successfully", "data": reviewer})
}

type BulkReviewerRequest struct {
	Reviewers []ReviewerRequest `json:"reviewers" binding:"required"`
}

// AddBulkReviewer inserts roster entries in bulk, skipping emails already on
// the roster and rows missing required fields.
func AddBulkReviewer(c *gin.Context) {
	var req BulkReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var existing []models.Reviewer
	if err := config.DB.Find(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewers addition failed", "error": err.Error()})
		return
	}
	known := make(map[string]bool, len(existing))
	for _, reviewer := range existing {
		known[reviewer.Email] = true
	}

	now := time.Now()
	rows := make([]models.Reviewer, 0, len(req.Reviewers))
	for _, entry := range req.Reviewers {
		email := strings.ToLower(entry.Email)
		if known[email] {
			continue
		}
		if entry.FirstName == "" || entry.LastName == "" || entry.Affiliation == "" || !utils.ValidateEmail(email) {
			continue
		}
		known[email] = true
		rows = append(rows, models.Reviewer{
			FirstName:   entry.FirstName,
			LastName:    entry.LastName,
			Email:       email,
			Affiliation: entry.Affiliation,
			CreateAt:    &now,
			UpdateAt:    &now,
		})
	}

	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All reviewers already exists"})
		return
	}

	if err := config.DB.Create(&rows).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewers addition failed", "error": err.Error()})
		return
	}

	for _, row := range rows {
		if err := grantRoleByEmail(config.DB, row.Email, models.RoleReviewer); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewers addition failed", "error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Reviewers added successfully", "data": rows})
}

func GetReviewerList(c *gin.Context) {
	var reviewers []models.Reviewer
	if err := config.DB.Order("reviewer_id").Find(&reviewers).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer data retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviewer data retrieved successfully", "data": reviewers})
}

// DeleteReviewer drops a roster entry and revokes the reviewer role from the
// matching account. Existing assignment rows on articles are left untouched.
func DeleteReviewer(c *gin.Context) {
	reviewerID := c.Param("reviewerId")

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ?", reviewerID).First(&reviewer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer not found"})
		return
	}

	if err := config.DB.Delete(&reviewer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer deletion failed", "error": err.Error()})
		return
	}

	if err := revokeRoleByEmail(config.DB, reviewer.Email, models.RoleReviewer); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Reviewer deletion failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviewer deleted successfully"})
}
