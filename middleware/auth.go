package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth guards the admin-only mutation endpoints. The system has a
// single shared admin role; tokens are issued by the login handler against
// static credentials.
type AdminAuth struct {
	secret []byte
}

// NewAdminAuth creates the auth helper with the given signing secret.
func NewAdminAuth(secret string) *AdminAuth {
	return &AdminAuth{secret: []byte(secret)}
}

// GenerateToken issues a signed admin token valid for 24 hours.
func (a *AdminAuth) GenerateToken(user string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": user,
		"role": "admin",
		"exp":  now.Add(24 * time.Hour).Unix(),
		"iat":  now.Unix(),
	})
	return token.SignedString(a.secret)
}

// validateToken parses and checks a token string.
func (a *AdminAuth) validateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// Middleware rejects requests without a valid bearer token.
func (a *AdminAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			c.Abort()
			return
		}

		if err := a.validateToken(tokenString); err != nil {
			log.Warnf("Rejected admin request from %s: %v", c.ClientIP(), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
