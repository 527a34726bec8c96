package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestReviewService(db *gorm.DB) *ReviewService {
	session := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 db.Logger.LogMode(logger.Silent),
	})
	return NewReviewService(session)
}

func TestSubmitReviewUpdatesOnlyOwnAssignment(t *testing.T) {
	reviewDate := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `articles` WHERE article_id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{"article_id", "user_id", "title"},
			rows:    [][]driver.Value{{int64(7), int64(1), "T"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviewer_assignments` WHERE article_id = \\? AND email = \\?"),
			args:    []driver.Value{int64(7), "r1@example.com"},
			columns: []string{"assignment_id", "article_id", "email", "status"},
			rows:    [][]driver.Value{{int64(3), int64(7), "r1@example.com", "Null"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `reviewer_assignments` SET .* WHERE assignment_id = \\?"),
			args:    []driver.Value{"Looks solid", reviewDate, true, "accepted", int64(3)},
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := newTestReviewService(db)
	err := svc.SubmitReview(7, "r1@example.com", ReviewUpdate{
		Status:     "accepted",
		Comments:   "Looks solid",
		Reviewed:   true,
		ReviewDate: &reviewDate,
	})
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestSubmitReviewNotAssigned(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `articles` WHERE article_id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{"article_id", "user_id", "title"},
			rows:    [][]driver.Value{{int64(7), int64(1), "T"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviewer_assignments` WHERE article_id = \\? AND email = \\?"),
			args:    []driver.Value{int64(7), "stranger@example.com"},
			columns: []string{"assignment_id", "article_id", "email", "status"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := newTestReviewService(db)
	err := svc.SubmitReview(7, "stranger@example.com", ReviewUpdate{Status: "accepted"})
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestSubmitReviewArticleMissing(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `articles` WHERE article_id = \\?"),
			args:    []driver.Value{int64(99)},
			columns: []string{"article_id", "user_id", "title"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := newTestReviewService(db)
	err := svc.SubmitReview(99, "r1@example.com", ReviewUpdate{Status: "accepted"})
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestMergeArticlesDeduplicatesByID(t *testing.T) {
	owned := []models.Article{
		{ArticleID: 1, Title: "first"},
		{ArticleID: 2, Title: "second"},
	}
	coauthored := []models.Article{
		{ArticleID: 2, Title: "second"},
		{ArticleID: 3, Title: "third"},
	}

	merged := MergeArticles(owned, coauthored)

	if len(merged) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(merged))
	}
	for i, want := range []int{1, 2, 3} {
		if merged[i].ArticleID != want {
			t.Fatalf("position %d: expected article %d, got %d", i, want, merged[i].ArticleID)
		}
	}
}

func TestMergeArticlesEmptyInputs(t *testing.T) {
	if got := MergeArticles(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty merge, got %d articles", len(got))
	}
}

func TestProjectReviewArticlesStripsOtherReviewers(t *testing.T) {
	articles := []models.Article{
		{
			ArticleID:    1,
			Title:        "T1",
			MergedScript: "m1.pdf",
			Reviewers: []models.ReviewerAssignment{
				{AssignmentID: 1, ArticleID: 1, Email: "r1@example.com", Status: "accepted"},
				{AssignmentID: 2, ArticleID: 1, Email: "r2@example.com", Status: "Null"},
			},
		},
		{
			ArticleID: 2,
			Title:     "T2",
			Reviewers: []models.ReviewerAssignment{
				{AssignmentID: 3, ArticleID: 2, Email: "r2@example.com"},
			},
		},
	}

	views := ProjectReviewArticles(articles, "r1@example.com")

	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0]
	if view.ArticleID != 1 || view.Title != "T1" || view.MergedScript != "m1.pdf" {
		t.Fatalf("unexpected projection: %#v", view)
	}
	if len(view.Reviewers) != 1 || view.Reviewers[0].Email != "r1@example.com" {
		t.Fatalf("foreign assignment leaked into view: %#v", view.Reviewers)
	}
}

func TestProjectReviewArticlesNoAssignments(t *testing.T) {
	articles := []models.Article{
		{ArticleID: 1, Reviewers: []models.ReviewerAssignment{{Email: "other@example.com"}}},
	}
	if got := ProjectReviewArticles(articles, "r1@example.com"); len(got) != 0 {
		t.Fatalf("expected no views, got %d", len(got))
	}
}

func TestBuildArticleUpdatesOnlyPresentFields(t *testing.T) {
	status := "under review"
	remarks := "needs one more round"

	updates := buildArticleUpdates(ArticlePatch{
		Status:   &status,
		Remarks:  &remarks,
		Keywords: []string{"catalysis", "kinetics"},
	})

	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d: %#v", len(updates), updates)
	}
	if updates["status"] != "under review" {
		t.Fatalf("unexpected status update: %v", updates["status"])
	}
	if updates["remarks"] != "needs one more round" {
		t.Fatalf("unexpected remarks update: %v", updates["remarks"])
	}
	if updates["keywords"] != `["catalysis","kinetics"]` {
		t.Fatalf("unexpected keywords encoding: %v", updates["keywords"])
	}
	if _, ok := updates["title"]; ok {
		t.Fatal("absent field must not be overwritten")
	}
}

func TestBuildAssignmentsAppliesDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	status := "accepted"

	rows := buildAssignments(5, []ReviewerAssignmentPatch{
		{Email: "r1@example.com"},
		{Email: "r2@example.com", Status: &status},
	}, now)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.ArticleID != 5 || first.Email != "r1@example.com" {
		t.Fatalf("unexpected row: %#v", first)
	}
	if first.Status != "Null" || first.Reviewed || first.ReviewDate == nil || !first.ReviewDate.Equal(now) {
		t.Fatalf("defaults not applied: %#v", first)
	}
	if rows[1].Status != "accepted" {
		t.Fatalf("explicit status ignored: %#v", rows[1])
	}
}
