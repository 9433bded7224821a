package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
)

const internalErrorMessage = "Internal server error occurred"

// APIResponse is the error envelope: {"success":false,"error":{...}}.
// Successful responses are endpoint-specific and written by the handlers.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponseWithError renders err using its AppError type and status.
// Errors that are not AppErrors, and internal AppErrors, become a bare 500
// so driver messages and stack details never reach a guest.
func ErrorResponseWithError(c *gin.Context, err error) {
	status, info := http.StatusInternalServerError, &ErrorInfo{
		Type:    string(errors.ErrorTypeInternal),
		Message: internalErrorMessage,
	}

	if appErr := errors.GetAppError(err); appErr != nil && appErr.Type != errors.ErrorTypeInternal {
		status = appErr.Code
		info = &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	c.JSON(status, APIResponse{Success: false, Error: info})
}
