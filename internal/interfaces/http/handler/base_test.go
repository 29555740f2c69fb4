package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/assetops/backend/internal/interfaces/http/middleware"
	"github.com/assetops/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.NewNotFoundError("Asset"), http.StatusNotFound, "NOT_FOUND"},
		{"gone", shared.ErrGone, http.StatusGone, "GONE"},
		{"conflict", shared.NewDomainError("ALREADY_EXISTS", "Asset tag already exists"), http.StatusConflict, "ALREADY_EXISTS"},
		{"invalid state", shared.NewDomainError("INVALID_STATE", "Asset is disposed"), http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"wrapped domain error", errors.Join(errors.New("ctx"), shared.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/", "")
			h := &BaseHandler{}
			h.HandleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			env := testutil.AssertErrorResponse(t, w, tc.code)
			if tc.code == dto.ErrCodeInternal {
				assert.NotContains(t, env.Msg, "disk full")
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	type input struct {
		Name string `json:"name" binding:"required,max=5"`
	}

	t.Run("valid body", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/", `{"name":"desk"}`)
		var in input
		assert.True(t, (&BaseHandler{}).BindJSON(c, &in))
		assert.Equal(t, "desk", in.Name)
	})

	t.Run("validation failure lists the fields", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/", `{"name":"forklift"}`)
		var in input
		assert.False(t, (&BaseHandler{}).BindJSON(c, &in))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "name", env.Error.Details[0].Field)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/", `{"name":`)
		var in input
		assert.False(t, (&BaseHandler{}).BindJSON(c, &in))
		testutil.AssertErrorResponse(t, w, dto.ErrCodeBadRequest)
	})
}

func TestBindOptionalJSON(t *testing.T) {
	type input struct {
		Reason string `json:"reason" binding:"max=3"`
	}

	t.Run("empty body is accepted", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/", "")
		var in input
		assert.True(t, (&BaseHandler{}).BindOptionalJSON(c, &in))
		assert.Empty(t, in.Reason)
	})

	t.Run("present body is validated", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/", `{"reason":"broken"}`)
		var in input
		assert.False(t, (&BaseHandler{}).BindOptionalJSON(c, &in))
		testutil.AssertErrorResponse(t, w, dto.ErrCodeValidation)
	})
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	c, _ := newContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := (&BaseHandler{}).ParseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := newContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	_, ok = (&BaseHandler{}).ParseID(c, "id")
	assert.False(t, ok)
	env := testutil.AssertErrorResponse(t, w, dto.ErrCodeBadRequest)
	assert.Equal(t, "Invalid id format", env.Msg)
}

func TestListFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/assets", "")
		f, ok := (&BaseHandler{}).ListFilter(c)
		require.True(t, ok)
		assert.Equal(t, shared.DefaultFilter(), f)
	})

	t.Run("paging, ordering, dates and entity filters", func(t *testing.T) {
		c, _ := newContext(http.MethodGet,
			"/assets?page=3&page_size=500&search=+lap+&order_by=tag&order_dir=ASC"+
				"&created_from=2026-01-01&created_to=2026-01-31&status=in_use&active=true&year=2026", "")
		f, ok := (&BaseHandler{}).ListFilter(c)
		require.True(t, ok)

		assert.Equal(t, 3, f.Page)
		assert.Equal(t, shared.MaxPageSize, f.PageSize)
		assert.Equal(t, "lap", f.Search)
		assert.Equal(t, "tag", f.OrderBy)
		assert.Equal(t, "asc", f.OrderDir)
		require.NotNil(t, f.CreatedFrom)
		require.NotNil(t, f.CreatedTo)
		assert.True(t, f.CreatedFrom.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, f.CreatedTo.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)),
			"a date-only upper bound covers the whole day")
		assert.Equal(t, map[string]interface{}{
			"status": "in_use",
			"active": true,
			"year":   int64(2026),
		}, f.Filters)
	})

	rejected := map[string]string{
		"page=two":                                     "page must be an integer",
		"order_dir=up":                                 "order_dir must be asc or desc",
		"created_from=yesterday":                       "created_from must be an RFC 3339 timestamp or a YYYY-MM-DD date",
		"created_from=2026-02-01&created_to=2026-01-01": "created_to cannot be before created_from",
	}
	for query, msg := range rejected {
		t.Run("rejects "+query, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/assets?"+query, "")
			_, ok := (&BaseHandler{}).ListFilter(c)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := testutil.AssertErrorResponse(t, w, dto.ErrCodeBadRequest)
			assert.Equal(t, msg, env.Msg)
		})
	}
}

func TestListViewQuery(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/tenant/permissions?search=asset&sort=code&desc=true&page=2", "")
	q, ok := (&BaseHandler{}).ListViewQuery(c)
	require.True(t, ok)
	assert.Equal(t, "asset", q.Search)
	assert.Equal(t, "code", q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.PageSize)

	c, w := newContext(http.MethodGet, "/tenant/permissions?desc=maybe", "")
	_, ok = (&BaseHandler{}).ListViewQuery(c)
	assert.False(t, ok)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeBadRequest)
}
