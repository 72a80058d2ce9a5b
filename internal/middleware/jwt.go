package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/pkg/jwt"
	"github.com/classboard/classboard/internal/pkg/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// JWTAuth guards a route group with bearer-token verification. A missing or
// malformed header is 401; a token that parses but fails verification is 403.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "MissingHeader", "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "MalformedHeader", "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			response.Error(c, http.StatusForbidden, tokenErrCode(err), "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

func tokenErrCode(err error) string {
	switch err {
	case jwt.ErrExpired:
		return "Expired"
	case jwt.ErrSignature:
		return "InvalidSignature"
	default:
		return "Malformed"
	}
}
