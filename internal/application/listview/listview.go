// Package listview filters, sorts and paginates in-memory record sets. It is
// the generic table behind the console's list pages and the server's
// code-defined catalogs.
package listview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied to a zero Query
const (
	DefaultDateField = "created_at"
	DefaultPageSize  = 10
)

const dateOnly = "2006-01-02"

// Record is one row of a list, keyed by JSON field name
type Record = map[string]any

// Query describes the view over a record set
type Query struct {
	Search    string
	DateField string
	// From and To are RFC 3339 timestamps or 2006-01-02 dates. A date-only To
	// includes its whole day.
	From     string
	To       string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// Page is one page of a filtered, sorted record set
type Page struct {
	Rows       []Record `json:"rows"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// Column describes a displayed field
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// ToRecords converts a slice of structs (or maps) to records by their JSON
// field names.
func ToRecords(v any) ([]Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Apply runs search, date range, sort and pagination over records in that
// order. The input slice is not modified.
func Apply(records []Record, q Query) (Page, error) {
	window, err := parseRange(q.From, q.To)
	if err != nil {
		return Page{}, err
	}
	dateField := q.DateField
	if dateField == "" {
		dateField = DefaultDateField
	}

	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(q.Search))

	rows := make([]Record, 0, len(records))
	for _, rec := range records {
		if needle != "" && !matches(folder, rec, needle) {
			continue
		}
		if !window.contains(rec[dateField]) {
			continue
		}
		rows = append(rows, rec)
	}

	if q.SortBy != "" {
		sortRecords(folder, rows, q.SortBy, q.SortDesc)
	}

	return paginate(rows, q.Page, q.PageSize), nil
}

// Cell returns the display string of a record's field, "" when missing
func Cell(rec Record, key string) string {
	return Stringify(rec[key])
}

// Stringify renders a field value the way search and tables see it
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// InferColumns returns one column per key found in records, sorted by key,
// titled from the key ("created_at" -> "Created At").
func InferColumns(records []Record) []Column {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Title: TitleFor(k)}
	}
	return cols
}

// TitleFor derives a column title from a snake_case or camelCase key
func TitleFor(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English).String(b.String())
}

// ParseColumns parses "key" or "key:Title" entries
func ParseColumns(specs []string) []Column {
	cols := make([]Column, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key, title, ok := strings.Cut(s, ":")
		if !ok || strings.TrimSpace(title) == "" {
			title = TitleFor(key)
		}
		cols = append(cols, Column{Key: strings.TrimSpace(key), Title: strings.TrimSpace(title)})
	}
	return cols
}

func matches(folder cases.Caser, rec Record, needle string) bool {
	for _, v := range rec {
		if strings.Contains(folder.String(Stringify(v)), needle) {
			return true
		}
	}
	return false
}

type dateRange struct {
	from *time.Time
	to   *time.Time // exclusive when toExclusive
	// toExclusive is set for date-only upper bounds, which cover the whole day
	toExclusive bool
}

func parseRange(from, to string) (dateRange, error) {
	var r dateRange
	if s := strings.TrimSpace(from); s != "" {
		t, _, ok := parseTime(s)
		if !ok {
			return r, shared.NewDomainError("INVALID_DATE_RANGE", "from must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		}
		r.from = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, dayOnly, ok := parseTime(s)
		if !ok {
			return r, shared.NewDomainError("INVALID_DATE_RANGE", "to must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		}
		if dayOnly {
			t = t.AddDate(0, 0, 1)
			r.toExclusive = true
		}
		r.to = &t
	}
	if r.from != nil && r.to != nil && r.to.Before(*r.from) {
		return r, shared.NewDomainError("INVALID_DATE_RANGE", "to cannot be before from")
	}
	return r, nil
}

// contains reports whether v falls in the range. Values that are missing or
// not dates are kept.
func (r dateRange) contains(v any) bool {
	if r.from == nil && r.to == nil {
		return true
	}
	t, ok := timeValue(v)
	if !ok {
		return true
	}
	if r.from != nil && t.Before(*r.from) {
		return false
	}
	if r.to != nil {
		if r.toExclusive {
			return t.Before(*r.to)
		}
		return !t.After(*r.to)
	}
	return true
}

func parseTime(s string) (t time.Time, dayOnly bool, ok bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

func timeValue(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		t, _, ok := parseTime(strings.TrimSpace(x))
		return t, ok
	}
	return time.Time{}, false
}

func numberValue(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case decimal.Decimal:
		return x, true
	case string:
		// decimals arrive as JSON strings
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func missing(v any) bool {
	if v == nil {
		return true
	}
	if t, ok := v.(*time.Time); ok && t == nil {
		return true
	}
	return false
}

func sortRecords(folder cases.Caser, rows []Record, key string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][key], rows[j][key]
		am, bm := missing(a), missing(b)
		switch {
		case am && bm:
			return false
		case am:
			return false
		case bm:
			return true
		}
		c := compare(folder, a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compare(folder cases.Caser, a, b any) int {
	if x, ok := numberValue(a); ok {
		if y, ok := numberValue(b); ok {
			return x.Cmp(y)
		}
	}
	if x, ok := timeValue(a); ok {
		if y, ok := timeValue(b); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(folder.String(Stringify(a)), folder.String(Stringify(b)))
}

func paginate(rows []Record, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(rows)
	if total == 0 {
		return Page{Rows: []Record{}, Total: 0, Page: 1, PageSize: pageSize, TotalPages: 0}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{
		Rows:       rows[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
