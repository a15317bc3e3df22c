package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserId  = "userId"
	CtxIsAdmin = "isAdmin"

	tokenTTL = 24 * time.Hour
)

// IssueToken signs the identity claims consumed by UserAuth/AdminAuth.
func IssueToken(secret string, userId uint64, isAdmin bool, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  userId,
		"isAdmin": isAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// UserAuth extracts {userId, isAdmin} from the bearer token. The core
// trusts these claims as given; issuing them is the identity provider's
// concern.
func UserAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userId, ok := claims["userId"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		isAdmin, _ := claims["isAdmin"].(bool)

		c.Set(CtxUserId, uint64(userId))
		c.Set(CtxIsAdmin, isAdmin)
		c.Next()
	}
}

// AdminAuth gates the approve/reject surface. Runs after UserAuth.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxIsAdmin)
		isAdmin, _ := v.(bool)
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUserId returns the authenticated user id set by UserAuth.
func CurrentUserId(c *gin.Context) uint64 {
	id, _ := c.Get(CtxUserId)
	userId, _ := id.(uint64)
	return userId
}
