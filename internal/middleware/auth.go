// Package middleware provides the HTTP middleware chain: the authorization
// gate, CSRF origin checking, security headers and page-view auditing.
package middleware

import (
	"net/http"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/auth"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"

	"github.com/gin-gonic/gin"
)

const sessionKey = "currentSession"

// loginPath returns the login page for the role a gated route requires.
func loginPath(role string) string {
	if role == models.RoleFaculty {
		return "/faculty/login"
	}
	return "/login"
}

func clientInfo(c *gin.Context) auth.ClientInfo {
	return auth.ClientInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// RequireRole is the authorization gate. It resolves the session cookie once
// and runs before any protected handler, so no protected content is produced
// without a passing check. Missing or expired sessions redirect to the login
// page for the required role without an audit record; a live session with
// the wrong role gets a 403 page and exactly one authz_denied record. If
// that record cannot be appended the request fails instead of proceeding
// unaudited.
func RequireRole(a *auth.Authenticator, cookieName, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		session, err := a.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, loginPath(role))
			c.Abort()
			return
		}

		if role != "" && session.Role != role {
			if err := a.DenyRole(c.Request.Context(), session, role, c.Request.URL.Path, clientInfo(c)); err != nil {
				c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
					"title":   "Service Unavailable",
					"message": "The service is temporarily unavailable. Please try again later.",
				})
				c.Abort()
				return
			}
			c.HTML(http.StatusForbidden, "error.html", gin.H{
				"title":   "Access Denied",
				"message": "You do not have permission to access this resource.",
			})
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAuth gates routes any authenticated role may use (the lab modules).
func RequireAuth(a *auth.Authenticator, cookieName string) gin.HandlerFunc {
	return RequireRole(a, cookieName, "")
}

// CurrentSession returns the session placed in the context by the gate.
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, ok := v.(*models.Session)
	if !ok {
		return nil
	}
	return session
}
