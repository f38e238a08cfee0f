package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-shipping-backend/pkg/utils"
)

const defaultMaxRequestBytes = 10 << 20

// RequestSizeLimitMiddleware rejects oversized bodies. Declared lengths are
// rejected up front; chunked uploads without a Content-Length are cut off by
// MaxBytesReader once they cross the limit mid-read.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = defaultMaxRequestBytes
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
