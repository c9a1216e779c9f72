package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/footer-citations/internal/adapters/http/dto"
)

// Timeout returns middleware that puts a deadline on the request context.
// Handlers run on the request goroutine and must honour ctx.Done(). If the
// deadline passed and the handler wrote nothing, a 504 is returned.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").WithTraceID(dto.GetTraceID(c)))
	}
}
