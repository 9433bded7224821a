// Package testutil builds gin contexts for handler tests and decodes the
// response envelope.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, path string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

// NewTestContext JSON-encodes body when it is non-nil.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		return newContext(method, path, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return newContext(method, path, bytes.NewReader(raw))
}

// NewRawTestContext sends body verbatim, for malformed JSON cases.
func NewRawTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	return newContext(method, path, bytes.NewBufferString(body))
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// ErrorType decodes an error envelope and returns its type.
func ErrorType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp utils.APIResponse
	require.NoError(t, ParseResponse(w, &resp))
	require.False(t, resp.Success, "expected an error envelope, got %s", w.Body.String())
	require.NotNil(t, resp.Error)
	return resp.Error.Type
}

func NewMockLogger() logger.Interface {
	return logger.NewNop()
}
