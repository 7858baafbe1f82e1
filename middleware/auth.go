package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AdminPrefix = "/admin"
	LoginPath   = "/login"
)

// SessionValidator reports whether a request carries an admin session.
type SessionValidator interface {
	Valid(r *http.Request) bool
}

// IsAdminPath matches /admin and anything below it.
func IsAdminPath(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// AdminGuard redirects requests for the admin area to the login page unless
// they carry a valid session cookie. Other paths pass through untouched.
func AdminGuard(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdminPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if !sessions.Valid(c.Request) {
			c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			c.Abort()
			return
		}

		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// RequireAdminAPI rejects mutating API calls without a session with 401.
func RequireAdminAPI(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip middleware for OPTIONS requests (CORS preflight)
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if !sessions.Valid(c.Request) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
