package models

import (
	"time"
)

// Role names used throughout the API. An account can hold any combination;
// plain authors need no role at all.
const (
	RoleEditor     = "editor"
	RoleReviewer   = "reviewer"
	RoleSuperAdmin = "admin"
)

type User struct {
	UserID         int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName      string     `gorm:"column:first_name" json:"first_name"`
	MiddleName     *string    `gorm:"column:middle_name" json:"middle_name,omitempty"`
	LastName       string     `gorm:"column:last_name" json:"last_name"`
	UserName       string     `gorm:"column:user_name;unique" json:"user_name"`
	ProfilePicture string     `gorm:"column:profile_picture" json:"profile_picture"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Email          string     `gorm:"column:email;unique" json:"email"`
	EmailVerified  bool       `gorm:"column:email_verified" json:"email_verified"`
	PhoneNumber    string     `gorm:"column:phone_number;unique" json:"phone_number"`
	Institution    *string    `gorm:"column:institution" json:"institution,omitempty"`
	Password       string     `gorm:"column:password" json:"-"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles;foreignKey:UserID;joinForeignKey:user_id;References:RoleID;joinReferences:role_id" json:"roles,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	RoleName string     `gorm:"column:role_name;unique" json:"role_name"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
}

// UserToken is an issued bearer token. Logout removes the row, which revokes
// the token even before its JWT expiry.
type UserToken struct {
	TokenID   int       `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int       `gorm:"column:user_id" json:"user_id"`
	Token     string    `gorm:"column:token" json:"-"`
	CreateAt  time.Time `gorm:"column:create_at" json:"create_at"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (UserToken) TableName() string {
	return "user_tokens"
}

// HasRole reports whether the loaded role set contains name.
func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.RoleName == name {
			return true
		}
	}
	return false
}

// RoleNames flattens the loaded role set for the request context.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.RoleName)
	}
	return names
}
