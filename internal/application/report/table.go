package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"time"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/domain/report"
	"github.com/assetops/backend/internal/domain/shared"
)

const defaultBody = `<table>
<thead><tr>{{range .Columns}}<th>{{.Title}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{else}}<tr><td colspan="{{len .Columns}}">No rows</td></tr>
{{end}}</tbody>
</table>`

const page = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body{font-family:sans-serif;font-size:12px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:4px 6px;text-align:left}
th{background:#f3f3f3}
</style></head>
<body>
<h1>{{.Title}}</h1>
{{with .Description}}<p>{{.}}</p>{{end}}
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}} · {{.Total}} rows</p>
{{.Content}}
</body></html>`

var pageTemplate = template.Must(template.New("page").Parse(page))

// table is the data handed to report bodies
type table struct {
	Title       string
	Description string
	Columns     []report.Column
	Rows        [][]string
	Records     []listview.Record
	Total       int
	GeneratedAt time.Time
}

func newTable(t *report.Template, records []listview.Record, at time.Time) *table {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = listview.Cell(rec, c.Key)
		}
		rows[i] = row
	}
	return &table{
		Title:       t.Name,
		Description: t.Description,
		Columns:     t.Columns,
		Rows:        rows,
		Records:     records,
		Total:       len(records),
		GeneratedAt: at,
	}
}

func (tb *table) csv() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := make([]string, len(tb.Columns))
	for i, c := range tb.Columns {
		header[i] = c.Title
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(tb.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tb *table) html(body string) ([]byte, error) {
	if body == "" {
		body = defaultBody
	}
	tpl, err := template.New("body").Parse(body)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_BODY", "Template body does not parse: "+err.Error())
	}
	var content bytes.Buffer
	if err := tpl.Execute(&content, tb); err != nil {
		return nil, shared.NewDomainError("TEMPLATE_EXECUTION_FAILED", err.Error())
	}
	var out bytes.Buffer
	err = pageTemplate.Execute(&out, struct {
		*table
		Content template.HTML
	}{tb, template.HTML(content.String())})
	if err != nil {
		return nil, fmt.Errorf("render report page: %w", err)
	}
	return out.Bytes(), nil
}
