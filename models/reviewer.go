package models

import "time"

// Reviewer is a roster entry. Assignment to an article is tracked separately
// on the article itself (ReviewerAssignment), matched by email.
type Reviewer struct {
	ReviewerID  int        `gorm:"primaryKey;column:reviewer_id" json:"reviewer_id"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Affiliation string     `gorm:"column:affiliation" json:"affiliation"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Reviewer) TableName() string {
	return "reviewers"
}
