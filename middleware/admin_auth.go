package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"booking-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader carries the shared admin secret.
const AdminKeyHeader = "x-admin-key"

// AdminKey rejects requests whose x-admin-key header does not match secret.
// secret may be the plain key or a bcrypt hash of it. An empty secret
// rejects everything.
func AdminKey(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	hashed := isBcryptHash(secret)

	return func(c *gin.Context) {
		provided := c.GetHeader(AdminKeyHeader)
		if secret == "" || provided == "" || !keyMatches(secret, provided, hashed) {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

func keyMatches(secret, provided string, hashed bool) bool {
	if hashed {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) == 1
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
