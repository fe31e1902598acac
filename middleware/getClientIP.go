package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// forwardedIP returns the left-most parseable address in a comma-separated header value.
func forwardedIP(value string) string {
	for _, part := range strings.Split(value, ",") {
		if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
			return ip.String()
		}
	}
	return ""
}

// getClientIP keys rate limiting and request logs. Proxy headers are trusted
// only when they carry a valid address.
func getClientIP(c *gin.Context) string {
	if ip := forwardedIP(c.GetHeader("X-Forwarded-For")); ip != "" {
		return ip
	}
	if ip := forwardedIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
