package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// Recovery turns a handler panic into the standard internal error envelope.
// Headers are not logged: Authorization carries the admin password or the
// cron secret.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok && isBrokenPipe(err) {
			log.Warnw("client went away mid-response",
				"route", c.FullPath(),
				"request_id", c.GetString(constants.ContextKeyRequestID),
				"error", err)
			c.Abort()
			return
		}

		log.Errorw("panic recovered",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"panic", fmt.Sprint(recovered),
			"stack", string(debug.Stack()))

		if c.Writer.Written() {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		utils.ErrorResponseWithError(c, errors.NewInternalError("panic"))
		c.Abort()
	})
}

func isBrokenPipe(err error) bool {
	return stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, syscall.ECONNRESET)
}
