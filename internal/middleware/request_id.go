package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// maxClientRequestIDLen caps client-supplied IDs so log lines stay bounded.
const maxClientRequestIDLen = 64

// RequestIDMiddleware tags every request with an ID and echoes it back in
// the response headers. A well-formed client-supplied ID is kept so callers
// can correlate retries across services; anything oversized is replaced.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxClientRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID tagged by RequestIDMiddleware, or an
// empty string when called outside the middleware chain.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(RequestIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
