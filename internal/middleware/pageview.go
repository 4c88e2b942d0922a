package middleware

import (
	"github.com/BolnidiManikanta/Virtual-Lab/internal/audit"

	"github.com/gin-gonic/gin"
)

// PageAudit records one page_view per authenticated request after the
// handler runs. These records are informational (debug level) and
// best-effort; unlike login and authorization events a write failure here
// never fails the request.
func PageAudit(sink audit.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		session := CurrentSession(c)
		if session == nil {
			return
		}

		_ = sink.Record(c.Request.Context(), audit.Record{
			Actor:     session.Username,
			Kind:      audit.KindPageView,
			Detail:    c.Request.Method + " " + c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
	}
}
