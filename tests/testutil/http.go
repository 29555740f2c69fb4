package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the decoded form of dto.Response with the payload kept raw
type Envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// DataAs decodes the payload into T
func DataAs[T any](t *testing.T, env Envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "Failed to decode data: %s", env.Data)
	return out
}

// HTTPTestCase describes one request against an engine and its expected
// outcome.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
	// ExpectedCode is the error code of a failed response
	ExpectedCode   string
	Validate       func(t *testing.T, w *httptest.ResponseRecorder)
}

// RunHTTPTestCases runs each case as a subtest.
func RunHTTPTestCases(t *testing.T, engine *gin.Engine, cases []HTTPTestCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			w := Perform(t, engine, tc.Method, tc.Path, tc.Body, tc.Headers)
			if tc.ExpectedStatus != 0 {
				assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
			}
			if tc.ExpectedCode != "" {
				AssertErrorResponse(t, w, tc.ExpectedCode)
			}
			if tc.Validate != nil {
				tc.Validate(t, w)
			}
		})
	}
}

// Perform serves one request. A non-nil body is sent as JSON.
func Perform(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = ToJSONReader(t, body)
	}
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// Decode parses the response envelope.
func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to parse JSON response: %s", w.Body.String())
	return env
}

// AssertSuccessResponse asserts a successful envelope and returns it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	env := Decode(t, w)
	assert.True(t, env.Success, "Expected success: %s", w.Body.String())
	assert.Equal(t, dto.MsgOK, env.Msg)
	assert.Nil(t, env.Error, "Expected no error")
	return env
}

// AssertErrorResponse asserts a failed envelope carrying expectedCode.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) Envelope {
	t.Helper()
	env := Decode(t, w)
	assert.False(t, env.Success, "Expected success to be false")
	require.NotNil(t, env.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, env.Error.Code, "Unexpected error code")
	assert.Equal(t, env.Error.Message, env.Msg)
	return env
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
