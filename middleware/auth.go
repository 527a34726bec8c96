package middleware

import (
	"net/http"
	"os"
	"strings"

	"journal-submission-api/config"
	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token, checks it has not been revoked,
// and resolves the principal's role set once for the request. Handlers read
// roles from the context only; they never consult the user record again.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: No token provided"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid authorization header format"})
			c.Abort()
			return
		}
		tokenString = strings.TrimSpace(tokenString)

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token claims"})
			c.Abort()
			return
		}

		// Reject tokens revoked by logout
		var issued models.UserToken
		if err := config.DB.Where("user_id = ? AND token = ?", claims.UserID, tokenString).First(&issued).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		// Check the account still exists and load its roles
		var user models.User
		if err := config.DB.Preload("Roles").
			Where("user_id = ? AND delete_at IS NULL", claims.UserID).
			First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: User not found"})
			c.Abort()
			return
		}

		c.Set("userID", user.UserID)
		c.Set("email", user.Email)
		c.Set("roles", user.RoleNames())
		c.Set("token", tokenString)
		c.Set("user", &user)

		c.Next()
	}
}

// RequireRole allows the request through when the principal holds at least
// one of the named roles.
func RequireRole(roleNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("roles")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden: Access denied"})
			c.Abort()
			return
		}

		held := value.([]string)
		allowed := false
	outer:
		for _, need := range roleNames {
			for _, have := range held {
				if need == have {
					allowed = true
					break outer
				}
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden: Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
