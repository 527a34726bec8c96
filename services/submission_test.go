package services

import (
	"testing"
	"time"

	"journal-submission-api/models"
)

func TestNewSubmissionDefaults(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	authors := []models.ArticleAuthor{
		{AuthorID: 99, ArticleID: 42, FirstName: "A", LastName: "One", Email: "a1@example.com", Affiliation: "X", AuthorOrder: 5},
		{FirstName: "B", LastName: "Two", Email: "b2@example.com", Affiliation: "Y"},
	}

	article, err := NewSubmission(7, "Title", "Abstract", []string{"kinetics"}, authors, SubmissionFiles{
		Manuscript:   "m.pdf",
		CoverLetter:  "c.pdf",
		MergedScript: "g.pdf",
	}, now)
	if err != nil {
		t.Fatalf("NewSubmission returned error: %v", err)
	}

	if article.Status != "submitted" {
		t.Fatalf("expected status submitted, got %q", article.Status)
	}
	if len(article.Reviewers) != 0 {
		t.Fatalf("fresh submission must carry no reviewer assignments, got %d", len(article.Reviewers))
	}
	if article.FinalStatus != nil {
		t.Fatalf("fresh submission must carry no final status, got %q", *article.FinalStatus)
	}
	if article.SupplementaryFile != nil {
		t.Fatalf("unexpected supplementary file: %q", *article.SupplementaryFile)
	}
	if article.UserID != 7 || article.Manuscript != "m.pdf" || article.CoverLetter != "c.pdf" || article.MergedScript != "g.pdf" {
		t.Fatalf("unexpected record: %#v", article)
	}
	if article.CreateAt == nil || !article.CreateAt.Equal(now) {
		t.Fatalf("unexpected create time: %v", article.CreateAt)
	}

	for i, author := range article.Authors {
		if author.AuthorID != 0 || author.ArticleID != 0 {
			t.Fatalf("author %d: client-supplied ids survived: %#v", i, author)
		}
		if author.AuthorOrder != i {
			t.Fatalf("author %d: order = %d", i, author.AuthorOrder)
		}
	}

	keywords := article.KeywordList()
	if len(keywords) != 1 || keywords[0] != "kinetics" {
		t.Fatalf("unexpected keywords: %v", keywords)
	}
}
