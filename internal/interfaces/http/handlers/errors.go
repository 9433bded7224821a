package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// errorOutcome labels a failure for metrics by its error type.
func errorOutcome(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return string(errors.ErrorTypeInternal)
}

// respondError logs expected client errors at warn level and everything else
// at error level, then writes the error envelope.
func respondError(c *gin.Context, log logger.Interface, msg string, err error, keysAndValues ...interface{}) {
	args := append([]interface{}{"path", c.FullPath(), "error", err}, keysAndValues...)

	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Type == errors.ErrorTypeInternal {
		log.Errorw(msg, args...)
	} else {
		log.Warnw(msg, args...)
	}

	utils.ErrorResponseWithError(c, err)
}

// bindError converts a gin binding failure into a validation error.
func bindError(err error) error {
	return errors.NewValidationError("invalid request body", err.Error())
}
