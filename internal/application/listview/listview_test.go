package listview

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{"id": "1", "name": "Forklift", "cost": 1500, "created_at": "2026-01-05T10:00:00Z"},
		{"id": "2", "name": "Laptop", "cost": 900.5, "created_at": "2026-01-10T23:30:00Z"},
		{"id": "3", "name": "ΣΊΣΥΦΟΣ tractor", "cost": 40, "created_at": "2026-02-01"},
		{"id": "4", "name": "Van", "created_at": "not a date"},
		{"id": "5", "name": "Desk", "cost": 300},
	}
}

func ids(p Page) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = Cell(r, "id")
	}
	return out
}

func TestApply_Defaults(t *testing.T) {
	p, err := Apply(sampleRecords(), Query{})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(p))
	assert.Equal(t, 5, p.Total)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 1, p.TotalPages)
}

func TestApply_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"case insensitive", "LAPtop", []string{"2"}},
		{"unicode folding", "σίσυφος", []string{"3"}},
		{"matches any field", "1500", []string{"1"}},
		{"blank is no filter", "   ", []string{"1", "2", "3", "4", "5"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Apply(sampleRecords(), Query{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(p))
		})
	}
}

func TestApply_DateRange(t *testing.T) {
	t.Run("date-only to includes the whole day", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{From: "2026-01-06", To: "2026-01-10"})
		require.NoError(t, err)
		// 2 is inside, 4 and 5 have no usable date and are kept
		assert.Equal(t, []string{"2", "4", "5"}, ids(p))
	})

	t.Run("timestamp bounds are inclusive", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{From: "2026-01-05T10:00:00Z", To: "2026-01-05T10:00:00Z"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "4", "5"}, ids(p))
	})

	t.Run("custom date field with time values", func(t *testing.T) {
		recs := []Record{
			{"id": "a", "acquired": time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			{"id": "b", "acquired": time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)},
		}
		p, err := Apply(recs, Query{DateField: "acquired", From: "2025-07-01"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(p))
	})

	t.Run("rejects bad bounds", func(t *testing.T) {
		_, err := Apply(sampleRecords(), Query{From: "yesterday"})
		assert.Error(t, err)

		_, err = Apply(sampleRecords(), Query{From: "2026-02-01", To: "2026-01-01"})
		assert.Error(t, err)
	})
}

func TestApply_Sort(t *testing.T) {
	t.Run("numbers compare numerically, missing last", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{SortBy: "cost"})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "5", "2", "1", "4"}, ids(p))

		p, err = Apply(sampleRecords(), Query{SortBy: "cost", SortDesc: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "5", "3", "4"}, ids(p))
	})

	t.Run("strings by folded value", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{SortBy: "name"})
		require.NoError(t, err)
		assert.Equal(t, []string{"5", "1", "2", "4", "3"}, ids(p))
	})

	t.Run("times chronologically", func(t *testing.T) {
		recs := []Record{
			{"id": "second", "at": "2026-02-28T23:00:00Z"},
			{"id": "first", "at": "2026-03-01T00:30:00+02:00"},
		}
		p, err := Apply(recs, Query{SortBy: "at"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, ids(p))
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		recs := []Record{
			{"id": "a", "k": 1}, {"id": "b", "k": 0}, {"id": "c", "k": 1}, {"id": "d", "k": 0},
		}
		p, err := Apply(recs, Query{SortBy: "k"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "d", "a", "c"}, ids(p))
	})

	t.Run("decimal strings compare numerically", func(t *testing.T) {
		recs := []Record{{"id": "a", "v": "100.00"}, {"id": "b", "v": "20"}}
		p, err := Apply(recs, Query{SortBy: "v"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, ids(p))
	})
}

func TestApply_Pagination(t *testing.T) {
	t.Run("second page", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4"}, ids(p))
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("page beyond the last is clamped", func(t *testing.T) {
		p, err := Apply(sampleRecords(), Query{Page: 9, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, []string{"5"}, ids(p))
	})

	t.Run("empty result", func(t *testing.T) {
		p, err := Apply(nil, Query{Page: 3, PageSize: -1})
		require.NoError(t, err)
		assert.NotNil(t, p.Rows)
		assert.Empty(t, p.Rows)
		assert.Equal(t, 0, p.TotalPages)
		assert.Equal(t, DefaultPageSize, p.PageSize)
	})
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	recs := sampleRecords()
	_, err := Apply(recs, Query{SortBy: "name", SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, "1", Cell(recs[0], "id"))
}

func TestToRecords(t *testing.T) {
	type row struct {
		Code  string          `json:"code"`
		Cost  decimal.Decimal `json:"cost"`
		Count int             `json:"count"`
	}
	recs, err := ToRecords([]row{{Code: "A", Cost: decimal.RequireFromString("12.50"), Count: 3}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A", Cell(recs[0], "code"))
	assert.Equal(t, "12.5", Cell(recs[0], "cost"))
	assert.Equal(t, "3", Cell(recs[0], "count"))

	empty, err := ToRecords([]row{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

func TestCellAndStringify(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := Record{"at": at, "nested": map[string]any{"a": 1}, "nil": nil}

	assert.Equal(t, "2026-01-02T03:04:05Z", Cell(rec, "at"))
	assert.Equal(t, "map[a:1]", Cell(rec, "nested"))
	assert.Equal(t, "", Cell(rec, "nil"))
	assert.Equal(t, "", Cell(rec, "missing"))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "Created At", TitleFor("created_at"))
	assert.Equal(t, "Tenant Id", TitleFor("tenantId"))

	cols := InferColumns([]Record{{"name": "x", "id": "1"}, {"code": "c"}})
	assert.Equal(t, []Column{{"code", "Code"}, {"id", "Id"}, {"name", "Name"}}, cols)

	assert.Equal(t, []Column{{"tag", "Asset Tag"}, {"book_value", "Book Value"}},
		ParseColumns([]string{"tag:Asset Tag", " book_value ", ""}))
}
