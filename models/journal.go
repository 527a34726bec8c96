package models

import "time"

type Journal struct {
	JournalID   int        `gorm:"primaryKey;column:journal_id" json:"journal_id"`
	EditorID    *int       `gorm:"column:editor_id" json:"editor_id,omitempty"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`

	Editor *User `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (Journal) TableName() string {
	return "journals"
}
