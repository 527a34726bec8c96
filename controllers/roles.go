package controllers

import (
	"errors"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

func ensureRole(db *gorm.DB, name string) (models.Role, error) {
	var role models.Role
	err := db.Where("role_name = ?", name).
		FirstOrCreate(&role, models.Role{RoleName: name}).Error
	return role, err
}

func grantRole(db *gorm.DB, user *models.User, name string) error {
	role, err := ensureRole(db, name)
	if err != nil {
		return err
	}
	return db.Model(user).Association("Roles").Append(&role)
}

// grantRoleByEmail attaches a role to the account registered under email.
// No account is not an error: the role attaches at registration instead.
func grantRoleByEmail(db *gorm.DB, email, name string) error {
	var user models.User
	if err := db.Where("email = ? AND delete_at IS NULL", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return grantRole(db, &user, name)
}

func revokeRoleByEmail(db *gorm.DB, email, name string) error {
	var user models.User
	if err := db.Where("email = ? AND delete_at IS NULL", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	var role models.Role
	if err := db.Where("role_name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return db.Model(&user).Association("Roles").Delete(&role)
}
