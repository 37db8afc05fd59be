package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
	"sozluk/internal/repository/redis"
)

const ContextUserIDKey = "user_id"

// Auth requires a valid bearer token whose value matches the user's
// stored session token; a later login elsewhere invalidates it.
func Auth(tokens *redis.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, tokens)
		if !ok {
			return
		}

		if err := tokens.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth injects the user id when a valid token is presented and
// stays silent otherwise.
func OptionalAuth(tokens *redis.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := pkg.ParseAccess(parts[1])
		if err != nil {
			c.Next()
			return
		}
		if stored, err := tokens.GetUserToken(claims.UserID); err != nil || stored != parts[1] {
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireRole loads the authenticated user and rejects the request
// unless their current role is listed. Runs after Auth.
func RequireRole(db *gorm.DB, roles ...string) gin.HandlerFunc {
	users := &mysql.UserRepository{DB: db}
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
	}
}

// RequireModerator allows moderators and admins.
func RequireModerator(db *gorm.DB) gin.HandlerFunc {
	return RequireRole(db, model.RoleModerator, model.RoleAdmin)
}

// RequireAdmin allows admins only.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return RequireRole(db, model.RoleAdmin)
}

// UserID returns the authenticated user id, or 0 for anonymous.
func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

func authenticate(c *gin.Context, tokens *redis.TokenRepository) (*pkg.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization format"})
		return nil, false
	}

	claims, err := pkg.ParseAccess(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return nil, false
	}

	stored, err := tokens.GetUserToken(claims.UserID)
	if err != nil || stored != parts[1] {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "session expired or logged in elsewhere"})
		return nil, false
	}
	return claims, true
}
