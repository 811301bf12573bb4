package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context key under which the authenticated user ID is stored.
const UserKey = "user_id"

var errNoUser = errors.New("no authenticated user in context")

// AuthRequired validates the gateway-issued bearer token and stashes the
// user ID for the handlers. The gateway signs tokens with the shared
// JWT_SECRET; the "sub" claim is the chat-platform user ID.
func AuthRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
		return
	}

	c.Set(UserKey, subject)
	c.Next()
}

// UserFromContext returns the authenticated user ID set by AuthRequired.
func UserFromContext(c *gin.Context) (string, error) {
	user := c.GetString(UserKey)
	if user == "" {
		return "", errNoUser
	}
	return user, nil
}
