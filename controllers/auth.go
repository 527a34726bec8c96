package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/middleware"
	"journal-submission-api/models"
	"journal-submission-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	MiddleName  *string `json:"middle_name"`
	LastName    string  `json:"last_name" binding:"required"`
	UserName    string  `json:"user_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	Institution *string `json:"institution"`
}

// Register creates an account. An email already on the reviewer roster gets
// the reviewer role at creation.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid registration data", "error": err.Error()})
		return
	}

	req.Email = utils.SanitizeInput(strings.ToLower(req.Email))
	req.UserName = utils.SanitizeInput(req.UserName)

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sorry a user with this email already exists"})
		return
	}
	if err := config.DB.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sorry a user with this phone number already exists"})
		return
	}
	if err := config.DB.Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sorry a user with this username already exists"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User registration failed", "error": err.Error()})
		return
	}

	now := time.Now()
	user := models.User{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		UserName:    req.UserName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Institution: req.Institution,
		Password:    hash,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User registration failed", "error": err.Error()})
		return
	}

	// Roster members become reviewers the moment they register
	var rosterEntry models.Reviewer
	if err := config.DB.Where("email = ?", req.Email).First(&rosterEntry).Error; err == nil {
		if err := grantRole(config.DB, &user, models.RoleReviewer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User registration failed", "error": err.Error()})
			return
		}
	}

	token, err := issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "User registered successfully",
		"accessToken": token,
	})
}

type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login accepts either the email or the username in user_name.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid login data", "error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Preload("Roles").
		Where("email = ? AND delete_at IS NULL", strings.ToLower(req.UserName)).
		First(&user).Error
	if err != nil {
		err = config.DB.Preload("Roles").
			Where("user_name = ? AND delete_at IS NULL", req.UserName).
			First(&user).Error
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Username"})
		return
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Password"})
		return
	}

	if !user.EmailVerified {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email not verified",
			"data": gin.H{
				"email":      user.Email,
				"first_name": user.FirstName,
				"user_name":  user.UserName,
			},
		})
		return
	}

	token, err := issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "User logged in successfully",
		"data":        user,
		"accessToken": token,
	})
}

// Logout revokes the presented token.
func Logout(c *gin.Context) {
	userID, _ := c.Get("userID")
	token, _ := c.Get("token")

	if err := config.DB.Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.UserToken{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User logout failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logged out successfully"})
}

// UserProfile returns the authenticated principal.
func UserProfile(c *gin.Context) {
	user, _ := c.Get("user")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User profile retrieved successfully", "data": user})
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User doesn't exists"})
		return
	}

	now := time.Now()
	user.EmailVerified = true
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Email verification failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User doesn't exist"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password change failed", "error": err.Error()})
		return
	}

	now := time.Now()
	user.Password = hash
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password change failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

type CheckUserRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
}

func CheckUser(c *gin.Context) {
	var req CheckUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		err = config.DB.Where("user_name = ?", req.UserName).First(&user).Error
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User doesn't exist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User exists",
		"data": gin.H{
			"email":      user.Email,
			"first_name": user.FirstName,
			"user_name":  user.UserName,
		},
	})
}

// UpdateProfile overwrites profile fields from a multipart form; the picture
// is optional and keeps its previous value when absent.
func UpdateProfile(c *gin.Context) {
	current, _ := c.Get("user")
	user := current.(*models.User)

	user.FirstName = c.PostForm("first_name")
	if middle := c.PostForm("middle_name"); middle != "" {
		user.MiddleName = &middle
	}
	user.LastName = c.PostForm("last_name")
	user.UserName = c.PostForm("user_name")
	user.Email = strings.ToLower(c.PostForm("email"))
	user.PhoneNumber = c.PostForm("phone_number")
	if institution := c.PostForm("institution"); institution != "" {
		user.Institution = &institution
	}
	if dob := c.PostForm("date_of_birth"); dob != "" {
		if parsed, err := time.Parse("2006-01-02", dob); err == nil {
			user.DateOfBirth = &parsed
		}
	}

	if fh, err := c.FormFile("profile_picture"); err == nil {
		name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
		if err := c.SaveUploadedFile(fh, filepath.Join(profilePictureDir(), name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User profile update failed", "error": err.Error()})
			return
		}
		user.ProfilePicture = name
	}

	now := time.Now()
	user.UpdateAt = &now
	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User profile update failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User profile updated successfully"})
}

// UserList is an editor-facing id and name projection of all accounts.
func UserList(c *gin.Context) {
	var users []models.User
	if err := config.DB.
		Select("user_id", "first_name", "middle_name", "last_name").
		Where("delete_at IS NULL").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "User list retrieval failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User list retrieved successfully", "data": users})
}

// issueToken signs a JWT for the user and persists it so logout can revoke.
func issueToken(user models.User) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	issued := models.UserToken{
		UserID:    user.UserID,
		Token:     tokenString,
		CreateAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := config.DB.Create(&issued).Error; err != nil {
		return "", err
	}

	return tokenString, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
