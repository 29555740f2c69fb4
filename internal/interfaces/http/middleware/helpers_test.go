package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// withSession stands in for JWTAuth in tests of later middleware
func withSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SessionKey, sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

func testSession(role string, permissions ...string) *session.Session {
	return &session.Session{
		TenantID:    uuid.New(),
		UserID:      uuid.New(),
		UserRole:    role,
		Email:       "user@example.com",
		Permissions: permissions,
	}
}
