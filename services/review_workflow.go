package services

import (
	"encoding/json"
	"errors"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

var (
	ErrArticleNotFound = errors.New("journal article not found")
	ErrNoArticles      = errors.New("no journal articles found")
	ErrNotAssigned     = errors.New("reviewer is not assigned to this article")
)

// ReviewService owns the article review workflow: visibility queries, editor
// patches and reviewer feedback. Reviewers can only ever touch the assignment
// row carrying their own email.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ownerColumns is the lightweight projection attached to article listings.
var ownerColumns = []string{"user_id", "first_name", "middle_name", "last_name", "email", "profile_picture"}

func (s *ReviewService) withListPreloads(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(ownerColumns)
		}).
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("author_order")
		}).
		Preload("Reviewers")
}

// OwnedArticles returns the union of articles the account submitted and
// articles listing its email as an author, deduplicated by article id.
// ErrNoArticles signals an empty union ("no submissions yet"), not a fault.
func (s *ReviewService) OwnedArticles(userID int, email string) ([]models.Article, error) {
	var owned []models.Article
	if err := s.withListPreloads(s.db).
		Where("user_id = ?", userID).
		Order("article_id").
		Find(&owned).Error; err != nil {
		return nil, err
	}

	var coauthored []models.Article
	if err := s.withListPreloads(s.db).
		Where("article_id IN (?)",
			s.db.Model(&models.ArticleAuthor{}).Select("article_id").Where("email = ?", email)).
		Order("article_id").
		Find(&coauthored).Error; err != nil {
		return nil, err
	}

	merged := MergeArticles(owned, coauthored)
	if len(merged) == 0 {
		return nil, ErrNoArticles
	}
	return merged, nil
}

// AllArticles returns every submission with the owner projection.
//
// TODO: scope by journal_id once submissions are linked to journals again.
// The get-article-list route still takes a journal id but the article model
// lost its journal reference, so every caller currently sees all articles.
func (s *ReviewService) AllArticles() ([]models.Article, error) {
	var articles []models.Article
	if err := s.withListPreloads(s.db).
		Order("article_id").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}

// ArticlePatch is an editor's partial overwrite. Present fields replace the
// stored value; a present reviewers array replaces the assignment set.
type ArticlePatch struct {
	Title          *string                   `json:"title"`
	Abstract       *string                   `json:"abstract"`
	Keywords       []string                  `json:"keywords"`
	Status         *string                   `json:"status"`
	Remarks        *string                   `json:"remarks"`
	FinalStatus    *string                   `json:"final_status"`
	EditorComments *string                   `json:"editor_comments"`
	Reviewers      []ReviewerAssignmentPatch `json:"reviewers"`
}

// ReviewerAssignmentPatch is one assignment row as supplied by an editor.
type ReviewerAssignmentPatch struct {
	Email      string     `json:"email" binding:"required"`
	Status     *string    `json:"status"`
	Comments   *string    `json:"comments"`
	ReviewDate *time.Time `json:"review_date"`
	Reviewed   *bool      `json:"reviewed"`
}

// buildArticleUpdates maps the set fields of a patch onto column updates.
func buildArticleUpdates(patch ArticlePatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Abstract != nil {
		updates["abstract"] = *patch.Abstract
	}
	if patch.Keywords != nil {
		data, err := json.Marshal(patch.Keywords)
		if err == nil {
			updates["keywords"] = string(data)
		}
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Remarks != nil {
		updates["remarks"] = *patch.Remarks
	}
	if patch.FinalStatus != nil {
		updates["final_status"] = *patch.FinalStatus
	}
	if patch.EditorComments != nil {
		updates["editor_comments"] = *patch.EditorComments
	}
	return updates
}

// buildAssignments materializes assignment rows from an editor patch,
// applying the sub-record defaults for anything the editor left out.
func buildAssignments(articleID int, patches []ReviewerAssignmentPatch, now time.Time) []models.ReviewerAssignment {
	rows := make([]models.ReviewerAssignment, 0, len(patches))
	for _, p := range patches {
		row := models.ReviewerAssignment{
			ArticleID:  articleID,
			Email:      p.Email,
			Status:     "Null",
			ReviewDate: &now,
			CreateAt:   &now,
		}
		if p.Status != nil {
			row.Status = *p.Status
		}
		if p.Comments != nil {
			row.Comments = *p.Comments
		}
		if p.ReviewDate != nil {
			row.ReviewDate = p.ReviewDate
		}
		if p.Reviewed != nil {
			row.Reviewed = *p.Reviewed
		}
		rows = append(rows, row)
	}
	return rows
}

// UpdateArticle applies an editor patch to one article. The caller holds the
// editor role; field-level vetting beyond the known patch fields is not done
// here. The patch and the reviewer set swap commit atomically.
func (s *ReviewService) UpdateArticle(articleID int, patch ArticlePatch) (*models.Article, error) {
	var article models.Article
	if err := s.db.Where("article_id = ?", articleID).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := buildArticleUpdates(patch)
	updates["update_at"] = now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Article{}).
			Where("article_id = ?", articleID).
			Updates(updates).Error; err != nil {
			return err
		}
		if patch.Reviewers != nil {
			if err := tx.Where("article_id = ?", articleID).
				Delete(&models.ReviewerAssignment{}).Error; err != nil {
				return err
			}
			rows := buildAssignments(articleID, patch.Reviewers, now)
			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Article
	if err := s.withListPreloads(s.db).
		Where("article_id = ?", articleID).
		First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReviewUpdate is a reviewer's feedback on their own assignment.
type ReviewUpdate struct {
	Status     string     `json:"status"`
	Comments   string     `json:"comments"`
	Reviewed   bool       `json:"reviewed"`
	ReviewDate *time.Time `json:"review_date"`
}

// SubmitReview overwrites the assignment row matching the reviewer's own
// email. A reviewer without an assignment gets ErrNotAssigned rather than a
// silent no-op. The write targets a single row by primary key, so concurrent
// submissions from different reviewers touch disjoint rows and cannot erase
// each other.
func (s *ReviewService) SubmitReview(articleID int, reviewerEmail string, update ReviewUpdate) error {
	var article models.Article
	if err := s.db.Where("article_id = ?", articleID).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	var assignment models.ReviewerAssignment
	if err := s.db.Where("article_id = ? AND email = ?", articleID, reviewerEmail).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAssigned
		}
		return err
	}

	reviewDate := update.ReviewDate
	if reviewDate == nil {
		now := time.Now()
		reviewDate = &now
	}

	return s.db.Model(&models.ReviewerAssignment{}).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"status":      update.Status,
			"comments":    update.Comments,
			"reviewed":    update.Reviewed,
			"review_date": reviewDate,
		}).Error
}

// ReviewArticleView is the projection handed to reviewers: article basics
// plus only their own assignment rows.
type ReviewArticleView struct {
	ArticleID    int                         `json:"article_id"`
	Title        string                      `json:"title"`
	MergedScript string                      `json:"merged_script"`
	CreateAt     *time.Time                  `json:"create_at"`
	Reviewers    []models.ReviewerAssignment `json:"reviewers"`
}

// AssignmentsForReviewer lists every article carrying an assignment for the
// email, filtered so no other reviewer's rows are visible.
func (s *ReviewService) AssignmentsForReviewer(email string) ([]ReviewArticleView, error) {
	var articles []models.Article
	if err := s.db.
		Select("article_id", "title", "merged_script", "create_at").
		Where("article_id IN (?)",
			s.db.Model(&models.ReviewerAssignment{}).Select("article_id").Where("email = ?", email)).
		Preload("Reviewers").
		Order("article_id").
		Find(&articles).Error; err != nil {
		return nil, err
	}

	views := ProjectReviewArticles(articles, email)
	if len(views) == 0 {
		return nil, ErrNoArticles
	}
	return views, nil
}

// MergeArticles unions two listings, keeping first-seen order and dropping
// duplicates by article id.
func MergeArticles(first, second []models.Article) []models.Article {
	seen := make(map[int]bool, len(first)+len(second))
	merged := make([]models.Article, 0, len(first)+len(second))
	for _, list := range [][]models.Article{first, second} {
		for _, article := range list {
			if seen[article.ArticleID] {
				continue
			}
			seen[article.ArticleID] = true
			merged = append(merged, article)
		}
	}
	return merged
}

// ProjectReviewArticles narrows articles to the reviewer-facing view. Rows
// belonging to other reviewers are stripped; articles where the email has no
// row are dropped entirely.
func ProjectReviewArticles(articles []models.Article, email string) []ReviewArticleView {
	views := make([]ReviewArticleView, 0, len(articles))
	for _, article := range articles {
		var own []models.ReviewerAssignment
		for _, assignment := range article.Reviewers {
			if assignment.Email == email {
				own = append(own, assignment)
			}
		}
		if len(own) == 0 {
			continue
		}
		views = append(views, ReviewArticleView{
			ArticleID:    article.ArticleID,
			Title:        article.Title,
			MergedScript: article.MergedScript,
			CreateAt:     article.CreateAt,
			Reviewers:    own,
		})
	}
	return views
}
