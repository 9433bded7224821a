package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// CronAuth checks the bearer secret sent by the external scheduler. An empty
// secret leaves the endpoint open.
func CronAuth(secret string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader(constants.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			log.Warnw("cron request rejected",
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid cron secret"))
			c.Abort()
			return
		}

		c.Next()
	}
}
