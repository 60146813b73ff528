package middleware

import (
	"net/http"
	"os"
	"strings"

	"quickstay-backend/models"
	"quickstay-backend/services"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

type sessionClaims struct {
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token and resolves the local user row
// for its subject. The user is attached to the context as an explicit
// principal; handlers read it back with CurrentUser.
func RequireAuth(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
			return
		}

		user, err := users.GetByID(claims.Subject)
		if err != nil {
			// Token is valid but the profile hasn't been synced yet.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found"})
			return
		}

		c.Set(principalKey, *user)
		c.Next()
	}
}

// CurrentUser returns the principal RequireAuth attached to the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
