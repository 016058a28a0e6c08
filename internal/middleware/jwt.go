package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 token for the user valid for ttl.
func IssueToken(secret []byte, uid int, username string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"uid": uid,
		"exp": exp.Unix(),
	}).SignedString(secret)
	return token, exp, err
}

// JWTAuth accepts "Bearer <token>" and stores user_id / user_name in the
// context. Tokens within the last quarter of their lifetime get a fresh one
// in the X-New-Token header.
func JWTAuth(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		uid, ok := claims["uid"].(float64)
		name, _ := claims["sub"].(string)
		if !ok || name == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("user_id", int(uid))
		c.Set("user_name", name)

		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < ttl/4 {
				if newToken, _, err := IssueToken(secret, int(uid), name, ttl); err == nil {
					c.Header("X-New-Token", newToken)
				}
			}
		}

		c.Next()
	}
}
