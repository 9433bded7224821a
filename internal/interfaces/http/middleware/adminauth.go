package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// AdminAuthMiddleware guards the admin endpoints with HTTP Basic credentials
// checked against a bcrypt hash.
type AdminAuthMiddleware struct {
	username     string
	passwordHash string
	verifier     PasswordVerifier
	logger       logger.Interface
}

func NewAdminAuthMiddleware(username, passwordHash string, verifier PasswordVerifier, logger logger.Interface) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		username:     username,
		passwordHash: passwordHash,
		verifier:     verifier,
		logger:       logger,
	}
}

// RequireAdmin rejects every request when no admin credentials are configured.
func (m *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.username == "" || m.passwordHash == "" {
			m.logger.Warnw("admin endpoint called but admin credentials are not configured",
				"path", c.Request.URL.Path)
			m.unauthorized(c)
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			m.unauthorized(c)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
		// bcrypt runs even when the username is wrong
		passErr := m.verifier.Verify(password, m.passwordHash)
		if !userMatch || passErr != nil {
			m.logger.Warnw("admin authentication failed",
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path)
			m.unauthorized(c)
			return
		}

		c.Set(constants.ContextKeyAdmin, username)
		c.Next()
	}
}

func (m *AdminAuthMiddleware) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="smartcheckin-admin"`)
	utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("admin authentication required"))
	c.Abort()
}
