package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/auth"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/protected", handlers...)
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAdminAuth(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("front-desk")
	require.NoError(t, err)

	mw := NewAdminAuthMiddleware("admin", hash, hasher, logger.NewNop())
	var seenAdmin string
	engine := newEngine(mw.RequireAdmin(), func(c *gin.Context) {
		seenAdmin = c.GetString(constants.ContextKeyAdmin)
	})

	tests := []struct {
		name       string
		user, pass string
		basic      bool
		wantStatus int
	}{
		{"valid credentials", "admin", "front-desk", true, http.StatusOK},
		{"wrong password", "admin", "guess", true, http.StatusUnauthorized},
		{"wrong username", "root", "front-desk", true, http.StatusUnauthorized},
		{"no credentials", "", "", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.basic {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := serve(engine, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}

	assert.Equal(t, "admin", seenAdmin)
}

func TestAdminAuth_NotConfigured(t *testing.T) {
	mw := NewAdminAuthMiddleware("", "", auth.NewBcryptPasswordHasher(4), logger.NewNop())
	engine := newEngine(mw.RequireAdmin())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("", "")
	assert.Equal(t, http.StatusUnauthorized, serve(engine, req).Code)
}

func TestCronAuth(t *testing.T) {
	engine := newEngine(CronAuth("s3cret", logger.NewNop()))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer", "Bearer s3cret", http.StatusOK},
		{"wrong secret", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			assert.Equal(t, tt.wantStatus, serve(engine, req).Code)
		})
	}
}

func TestCronAuth_OpenWhenSecretEmpty(t *testing.T) {
	engine := newEngine(CronAuth("", logger.NewNop()))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	assert.Equal(t, http.StatusOK, serve(engine, req).Code)
}

func TestCORS(t *testing.T) {
	engine := newEngine(CORS([]string{"https://checkin.example"}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Origin", "https://checkin.example")
	w := serve(engine, req)
	assert.Equal(t, "https://checkin.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNop()))
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS_Preflight(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://checkin.example/"}))
	engine.POST("/api/reservations/checkin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/reservations/checkin", nil)
	req.Header.Set("Origin", "https://checkin.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(engine, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://checkin.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestSecurityHeaders(t *testing.T) {
	w := serve(newEngine(SecurityHeaders()), httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "publickey-credentials-get")
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/id", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(constants.HeaderXRequestID, "front-desk-42")
	w = serve(engine, req)
	assert.Equal(t, "front-desk-42", w.Body.String())
}

func TestRecovery_Envelope(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNop()))
	engine.GET("/panic", func(c *gin.Context) {
		panic("door pin 1234")
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.JSONEq(t, `{"success":false,"error":{"type":"internal_error","message":"Internal server error occurred"}}`, w.Body.String())
}
