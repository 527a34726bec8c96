package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/services"
	"journal-submission-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddArticle accepts a multipart submission: title, abstract, keywords and
// authors as JSON-encoded form fields plus the attachment files. The record
// starts in status "submitted" with an empty reviewer list.
func AddArticle(c *gin.Context) {
	userID := c.GetInt("userID")

	title := utils.SanitizeInput(c.PostForm("title"))
	abstract := utils.SanitizeInput(c.PostForm("abstract"))
	if title == "" || abstract == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and abstract are required"})
		return
	}

	var keywords []string
	if raw := c.PostForm("keywords"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid keywords", "error": err.Error()})
			return
		}
	}

	var authors []models.ArticleAuthor
	if err := json.Unmarshal([]byte(c.PostForm("authors")), &authors); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid authors", "error": err.Error()})
		return
	}
	if len(authors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one author is required"})
		return
	}
	for i := range authors {
		author := &authors[i]
		if author.FirstName == "" || author.LastName == "" || author.Affiliation == "" || !utils.ValidateEmail(author.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Every author needs a first name, last name, email and affiliation"})
			return
		}
	}

	// Uploads already on disk are discarded whenever a later step fails, so
	// an aborted submission stores nothing.
	var saved []storedFile

	manuscript, err := saveArticleFile(c, "manuscript", models.CategoryManuscript)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Manuscript file is required", "error": err.Error()})
		return
	}
	saved = append(saved, storedFile{manuscript, models.CategoryManuscript})

	coverLetter, err := saveArticleFile(c, "cover_letter", models.CategoryCoverLetter)
	if err != nil {
		discardStoredFiles(saved)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cover letter file is required", "error": err.Error()})
		return
	}
	saved = append(saved, storedFile{coverLetter, models.CategoryCoverLetter})

	mergedScript, err := saveArticleFile(c, "merged_script", models.CategoryMergedScript)
	if err != nil {
		discardStoredFiles(saved)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Merged script file is required", "error": err.Error()})
		return
	}
	saved = append(saved, storedFile{mergedScript, models.CategoryMergedScript})

	var supplementary *string
	if _, err := c.FormFile("supplementary_file"); err == nil {
		name, err := saveArticleFile(c, "supplementary_file", models.CategorySupplementary)
		if err != nil {
			discardStoredFiles(saved)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Article submission failed", "error": err.Error()})
			return
		}
		supplementary = &name
		saved = append(saved, storedFile{name, models.CategorySupplementary})
	}

	article, err := services.NewSubmission(userID, title, abstract, keywords, authors, services.SubmissionFiles{
		Manuscript:        manuscript,
		CoverLetter:       coverLetter,
		MergedScript:      mergedScript,
		SupplementaryFile: supplementary,
	}, time.Now())
	if err != nil {
		discardStoredFiles(saved)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid keywords", "error": err.Error()})
		return
	}

	if err := config.DB.Create(&article).Error; err != nil {
		discardStoredFiles(saved)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Article submission failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Article submitted successfully", "data": article})
}

func saveArticleFile(c *gin.Context, field string, category models.FileCategory) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(categoryDir(category), name)); err != nil {
		return "", err
	}
	return name, nil
}

// GetArticles lists the caller's own and co-authored submissions.
func GetArticles(c *gin.Context) {
	userID := c.GetInt("userID")
	email := c.GetString("email")

	svc := services.NewReviewService(config.DB)
	articles, err := svc.OwnedArticles(userID, email)
	if err != nil {
		if errors.Is(err, services.ErrNoArticles) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "You didn't submit any journal article"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal Articles data retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal Articles data retrieved successfully", "data": articles})
}

// GetArticleList lists submissions for editors. The journal id parameter is
// accepted but not yet applied; see ReviewService.AllArticles.
func GetArticleList(c *gin.Context) {
	svc := services.NewReviewService(config.DB)
	articles, err := svc.AllArticles()
	if err != nil {
		if errors.Is(err, services.ErrNoArticles) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No journal articles found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal Articles data retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal Articles data retrieved successfully", "data": articles})
}

type UpdateArticleRequest struct {
	ArticleID int `json:"article_id" binding:"required"`
	services.ArticlePatch
}

// UpdateArticle applies an editor patch to one article.
func UpdateArticle(c *gin.Context) {
	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	svc := services.NewReviewService(config.DB)
	article, err := svc.UpdateArticle(req.ArticleID, req.ArticlePatch)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal article not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal article update failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal article updated successfully", "data": article})
}

type UpdateReviewRequest struct {
	ArticleID int `json:"article_id" binding:"required"`
	services.ReviewUpdate
}

// UpdateReview records the caller's feedback on their own assignment. The
// reviewer's email comes from the authenticated principal, never the body.
func UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	email := c.GetString("email")
	svc := services.NewReviewService(config.DB)
	if err := svc.SubmitReview(req.ArticleID, email, req.ReviewUpdate); err != nil {
		switch {
		case errors.Is(err, services.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal article not found"})
		case errors.Is(err, services.ErrNotAssigned):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "You are not assigned to review this article"})
		default:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal article update failed", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal article updated successfully"})
}

// GetReviewArticles lists the caller's review assignments, restricted to
// their own assignment rows.
func GetReviewArticles(c *gin.Context) {
	email := c.GetString("email")

	svc := services.NewReviewService(config.DB)
	views, err := svc.AssignmentsForReviewer(email)
	if err != nil {
		if errors.Is(err, services.ErrNoArticles) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No review articles found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Journal Articles data retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Journal Articles data retrieved successfully", "data": views})
}
