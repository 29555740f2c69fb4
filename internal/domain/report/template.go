// Package report holds report templates rendered over tenant data.
package report

import (
	"context"
	"html/template"
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Entity is the data set a template reports on
type Entity string

const (
	EntityAssets       Entity = "assets"
	EntityLeases       Entity = "leases"
	EntityDepreciation Entity = "depreciation"
	EntityBudgets      Entity = "budgets"
)

// ParseEntity validates a report entity
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(strings.ToLower(strings.TrimSpace(s))); e {
	case EntityAssets, EntityLeases, EntityDepreciation, EntityBudgets:
		return e, nil
	}
	return "", shared.NewDomainError("INVALID_REPORT_ENTITY", "Entity must be assets, leases, depreciation or budgets")
}

// Format is an output format
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format; empty resolves to fallback
func ParseFormat(s string, fallback Format) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return fallback, nil
	case FormatHTML, FormatPDF, FormatCSV:
		return f, nil
	}
	return "", shared.NewDomainError("INVALID_REPORT_FORMAT", "Format must be html, pdf or csv")
}

// Extension returns the file extension of the format
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Column is one output column: a field key of the entity rows and its title
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Template describes a report
type Template struct {
	shared.TenantAggregateRoot
	Code          string
	Name          string
	Description   string
	Entity        Entity
	Columns       []Column
	Body          string
	DefaultFormat Format
}

// NewTemplate creates a report template
func NewTemplate(tenantID uuid.UUID, code, name string, entity Entity, columns []Column) (*Template, error) {
	code, err := shared.NormalizeCode("report_template", code, 50)
	if err != nil {
		return nil, err
	}
	t := &Template{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Entity:              entity,
		DefaultFormat:       FormatHTML,
	}
	if err := t.apply(name, "", columns, "", FormatHTML); err != nil {
		return nil, err
	}
	return t, nil
}

// Update sets the editable fields
func (t *Template) Update(name, description string, columns []Column, body string, defaultFormat Format) error {
	if err := t.apply(name, description, columns, body, defaultFormat); err != nil {
		return err
	}
	t.Touch()
	return nil
}

func (t *Template) apply(name, description string, columns []Column, body string, defaultFormat Format) error {
	name, err := shared.RequireName("report_template", name, 200)
	if err != nil {
		return err
	}
	cols, err := normalizeColumns(columns)
	if err != nil {
		return err
	}
	body = strings.TrimSpace(body)
	if body != "" {
		if _, err := template.New("body").Parse(body); err != nil {
			return shared.NewDomainError("INVALID_TEMPLATE_BODY", "Template body does not parse: "+err.Error())
		}
	}
	if defaultFormat == "" {
		defaultFormat = FormatHTML
	}
	t.Name = name
	t.Description = strings.TrimSpace(description)
	t.Columns = cols
	t.Body = body
	t.DefaultFormat = defaultFormat
	return nil
}

func normalizeColumns(columns []Column) ([]Column, error) {
	if len(columns) == 0 {
		return nil, shared.NewDomainError("INVALID_REPORT_COLUMNS", "At least one column is required")
	}
	seen := make(map[string]bool, len(columns))
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return nil, shared.NewDomainError("INVALID_REPORT_COLUMNS", "Column key cannot be empty")
		}
		if seen[key] {
			return nil, shared.NewDomainError("INVALID_REPORT_COLUMNS", "Duplicate column "+key)
		}
		seen[key] = true
		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = key
		}
		out = append(out, Column{Key: key, Title: title})
	}
	return out, nil
}

// Repository persists report templates
type Repository interface {
	shared.CrudRepository[Template]
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
