package middleware

import "github.com/gin-gonic/gin"

// securityHeaders are attached to every response.
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"X-XSS-Protection":       "1; mode=block",
	"Content-Security-Policy": "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
		"style-src 'self' 'unsafe-inline'; img-src 'self' data:;",
}

// SecurityHeaders sets the standard security response headers. HSTS is only
// meaningful over TLS, so it is added in release mode alone.
func SecurityHeaders(releaseMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		for header, value := range securityHeaders {
			c.Header(header, value)
		}
		if releaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
