package models

import (
	"encoding/json"
	"time"
)

// FileCategory tags an attachment with the storage bucket it lives in.
// Callers pass the tag explicitly; nothing is inferred from the filename.
type FileCategory string

const (
	CategoryManuscript    FileCategory = "manuscript"
	CategoryCoverLetter   FileCategory = "cover_letter"
	CategorySupplementary FileCategory = "supplementary_file"
	CategoryMergedScript  FileCategory = "merged_script"
)

// Dir returns the subdirectory under the upload root for this category.
func (c FileCategory) Dir() string {
	switch c {
	case CategoryManuscript:
		return "manuscript"
	case CategoryCoverLetter:
		return "cover-letter"
	case CategorySupplementary:
		return "supplementary-file"
	case CategoryMergedScript:
		return "merged-script"
	}
	return ""
}

// Valid reports whether c is one of the known categories.
func (c FileCategory) Valid() bool {
	return c.Dir() != ""
}

// AllCategories lists every attachment bucket, used to provision directories.
func AllCategories() []FileCategory {
	return []FileCategory{
		CategoryManuscript,
		CategoryCoverLetter,
		CategorySupplementary,
		CategoryMergedScript,
	}
}

type Article struct {
	ArticleID int  `gorm:"primaryKey;column:article_id" json:"article_id"`
	UserID    int  `gorm:"column:user_id" json:"user_id"`
	JournalID *int `gorm:"column:journal_id" json:"journal_id,omitempty"`

	Title    string `gorm:"column:title" json:"title"`
	Abstract string `gorm:"column:abstract" json:"abstract"`
	// Keywords is a JSON-encoded string array; use SetKeywords/KeywordList.
	Keywords string `gorm:"column:keywords" json:"-"`

	Manuscript        string  `gorm:"column:manuscript" json:"manuscript"`
	CoverLetter       string  `gorm:"column:cover_letter" json:"cover_letter"`
	SupplementaryFile *string `gorm:"column:supplementary_file" json:"supplementary_file,omitempty"`
	MergedScript      string  `gorm:"column:merged_script" json:"merged_script"`

	Status         string  `gorm:"column:status;default:submitted" json:"status"`
	Remarks        string  `gorm:"column:remarks" json:"remarks"`
	FinalStatus    *string `gorm:"column:final_status" json:"final_status,omitempty"`
	EditorComments string  `gorm:"column:editor_comments" json:"editor_comments"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Owner     *User                `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Authors   []ArticleAuthor      `gorm:"foreignKey:ArticleID" json:"authors,omitempty"`
	Reviewers []ReviewerAssignment `gorm:"foreignKey:ArticleID" json:"reviewers,omitempty"`
}

// ArticleAuthor is one entry of the ordered author list. The three flags are
// independent booleans; exclusivity is the caller's responsibility.
type ArticleAuthor struct {
	AuthorID    int    `gorm:"primaryKey;column:author_id" json:"author_id"`
	ArticleID   int    `gorm:"column:article_id" json:"article_id"`
	FirstName   string `gorm:"column:first_name" json:"first_name"`
	LastName    string `gorm:"column:last_name" json:"last_name"`
	Email       string `gorm:"column:email" json:"email"`
	Affiliation string `gorm:"column:affiliation" json:"affiliation"`

	CorrespondingAuthor bool `gorm:"column:corresponding_author" json:"corresponding_author"`
	FirstAuthor         bool `gorm:"column:first_author" json:"first_author"`
	OtherAuthor         bool `gorm:"column:other_author" json:"other_author"`

	AuthorOrder int `gorm:"column:author_order" json:"author_order"`
}

// ReviewerAssignment is one reviewer's tracking line on an article, keyed by
// email. It is not a reference into the reviewer roster.
type ReviewerAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ArticleID    int        `gorm:"column:article_id" json:"article_id"`
	Email        string     `gorm:"column:email" json:"email"`
	Status       string     `gorm:"column:status;default:Null" json:"status"`
	Comments     string     `gorm:"column:comments" json:"comments"`
	ReviewDate   *time.Time `gorm:"column:review_date" json:"review_date"`
	Reviewed     bool       `gorm:"column:reviewed" json:"reviewed"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Article) TableName() string {
	return "articles"
}

func (ArticleAuthor) TableName() string {
	return "article_authors"
}

func (ReviewerAssignment) TableName() string {
	return "reviewer_assignments"
}

// SetKeywords stores the keyword list as JSON text.
func (a *Article) SetKeywords(keywords []string) error {
	data, err := json.Marshal(keywords)
	if err != nil {
		return err
	}
	a.Keywords = string(data)
	return nil
}

// KeywordList decodes the stored keyword column. Malformed or empty storage
// decodes to an empty list rather than an error.
func (a *Article) KeywordList() []string {
	if a.Keywords == "" {
		return []string{}
	}
	var keywords []string
	if err := json.Unmarshal([]byte(a.Keywords), &keywords); err != nil {
		return []string{}
	}
	return keywords
}

// MarshalJSON emits keywords as a decoded array alongside the other fields.
func (a Article) MarshalJSON() ([]byte, error) {
	type alias Article
	return json.Marshal(struct {
		alias
		Keywords []string `json:"keywords"`
	}{
		alias:    alias(a),
		Keywords: a.KeywordList(),
	})
}

// IsAssociated reports whether an account is the owner, a listed author or an
// assigned reviewer of the article.
func (a *Article) IsAssociated(userID int, email string) bool {
	if a.UserID == userID {
		return true
	}
	for _, author := range a.Authors {
		if author.Email == email {
			return true
		}
	}
	for _, reviewer := range a.Reviewers {
		if reviewer.Email == email {
			return true
		}
	}
	return false
}
