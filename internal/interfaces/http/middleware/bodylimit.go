package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailops/backoffice/internal/interfaces/http/dto"
)

// DefaultMaxBodySize caps request bodies at 10 MiB, enough for voucher
// uploads while bounding memory per request.
const DefaultMaxBodySize int64 = 10 << 20

// BodyLimit rejects requests whose declared Content-Length exceeds maxSize
// and wraps the body reader so chunked requests are capped too.
func BodyLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body too large", c.GetString("request_id")))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
