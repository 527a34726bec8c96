package services

import (
	"time"

	"journal-submission-api/models"
)

// SubmissionFiles names the stored attachments of a new submission.
type SubmissionFiles struct {
	Manuscript        string
	CoverLetter       string
	MergedScript      string
	SupplementaryFile *string
}

// NewSubmission builds the record for a fresh submission: status "submitted",
// authors ordered as given with any client-supplied ids cleared, no reviewer
// assignments and no final status.
func NewSubmission(userID int, title, abstract string, keywords []string, authors []models.ArticleAuthor, files SubmissionFiles, now time.Time) (models.Article, error) {
	for i := range authors {
		authors[i].AuthorID = 0
		authors[i].ArticleID = 0
		authors[i].AuthorOrder = i
	}

	article := models.Article{
		UserID:            userID,
		Title:             title,
		Abstract:          abstract,
		Manuscript:        files.Manuscript,
		CoverLetter:       files.CoverLetter,
		SupplementaryFile: files.SupplementaryFile,
		MergedScript:      files.MergedScript,
		Status:            "submitted",
		CreateAt:          &now,
		UpdateAt:          &now,
		Authors:           authors,
	}
	if err := article.SetKeywords(keywords); err != nil {
		return models.Article{}, err
	}
	return article, nil
}
