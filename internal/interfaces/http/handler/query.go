package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

// listParams are the query keys every list route understands. Any other
// key is passed on as an entity filter.
var listParams = map[string]bool{
	"page":         true,
	"page_size":    true,
	"search":       true,
	"order_by":     true,
	"order_dir":    true,
	"created_from": true,
	"created_to":   true,
	"unread_only":  true,
}

// ListFilter builds a shared.Filter from the list query. Unknown filter keys
// are ignored by the repositories. On failure it writes a 400 and returns
// false.
func (h *BaseHandler) ListFilter(c *gin.Context) (shared.Filter, bool) {
	f := shared.DefaultFilter()
	var err error

	if f.Page, err = queryInt(c, "page", f.Page); err != nil {
		h.BadRequest(c, "page must be an integer")
		return f, false
	}
	if f.PageSize, err = queryInt(c, "page_size", f.PageSize); err != nil {
		h.BadRequest(c, "page_size must be an integer")
		return f, false
	}
	f.Search = strings.TrimSpace(c.Query("search"))
	if v := strings.TrimSpace(c.Query("order_by")); v != "" {
		f.OrderBy = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.Query("order_dir"))); v != "" {
		if v != "asc" && v != "desc" {
			h.BadRequest(c, "order_dir must be asc or desc")
			return f, false
		}
		f.OrderDir = v
	}

	if v := strings.TrimSpace(c.Query("created_from")); v != "" {
		t, _, ok := parseQueryTime(v)
		if !ok {
			h.BadRequest(c, "created_from must be an RFC 3339 timestamp or a YYYY-MM-DD date")
			return f, false
		}
		f.CreatedFrom = &t
	}
	if v := strings.TrimSpace(c.Query("created_to")); v != "" {
		t, dayOnly, ok := parseQueryTime(v)
		if !ok {
			h.BadRequest(c, "created_to must be an RFC 3339 timestamp or a YYYY-MM-DD date")
			return f, false
		}
		if dayOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.CreatedTo = &t
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		h.BadRequest(c, "created_to cannot be before created_from")
		return f, false
	}

	for key, values := range c.Request.URL.Query() {
		if listParams[key] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			f = f.With(key, filterValue(v))
		}
	}
	return f.Normalize(), true
}

// ListViewQuery reads the listview query of the code-defined catalogs
func (h *BaseHandler) ListViewQuery(c *gin.Context) (listview.Query, bool) {
	q := listview.Query{
		Search:    c.Query("search"),
		DateField: c.Query("date_field"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		SortBy:    c.Query("sort"),
	}
	var err error
	if q.SortDesc, err = queryBool(c, "desc"); err != nil {
		h.BadRequest(c, "desc must be a boolean")
		return q, false
	}
	if q.Page, err = queryInt(c, "page", 1); err != nil {
		h.BadRequest(c, "page must be an integer")
		return q, false
	}
	if q.PageSize, err = queryInt(c, "page_size", listview.DefaultPageSize); err != nil {
		h.BadRequest(c, "page_size must be an integer")
		return q, false
	}
	return q, true
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func queryBool(c *gin.Context, key string) (bool, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// filterValue types a filter value: true and false become booleans, digit
// strings integers, anything else stays a string.
func filterValue(v string) interface{} {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if isDigits(v) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return v
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func parseQueryTime(s string) (t time.Time, dayOnly bool, ok bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}
