package report

import (
	"time"

	"github.com/assetops/backend/internal/domain/report"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TemplateDTO represents a report template
type TemplateDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Entity        string          `json:"entity"`
	Columns       []report.Column `json:"columns"`
	Body          string          `json:"body,omitempty"`
	DefaultFormat string          `json:"default_format"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// CreateTemplateInput is the body of POST /report-templates
type CreateTemplateInput struct {
	Code          string          `json:"code" binding:"required,max=50"`
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	Entity        string          `json:"entity" binding:"required,oneof=assets leases depreciation budgets"`
	Columns       []report.Column `json:"columns" binding:"required,min=1,dive"`
	Body          string          `json:"body"`
	DefaultFormat string          `json:"default_format" binding:"omitempty,oneof=html pdf csv"`
}

// UpdateTemplateInput is the body of PUT /report-templates/:id. The code and
// entity are fixed at creation.
type UpdateTemplateInput struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	Columns       []report.Column `json:"columns" binding:"required,min=1,dive"`
	Body          string          `json:"body"`
	DefaultFormat string          `json:"default_format" binding:"omitempty,oneof=html pdf csv"`
}

// RenderInput is the body of POST /report-templates/:id/render. An empty
// format uses the template default.
type RenderInput struct {
	Format      string            `json:"format" binding:"omitempty,oneof=html pdf csv"`
	Search      string            `json:"search"`
	OrderBy     string            `json:"order_by"`
	OrderDir    string            `json:"order_dir" binding:"omitempty,oneof=asc desc"`
	CreatedFrom *time.Time        `json:"created_from"`
	CreatedTo   *time.Time        `json:"created_to"`
	Filters     map[string]string `json:"filters"`
}

func (in RenderInput) filter() shared.Filter {
	f := shared.DefaultFilter()
	f.Search = in.Search
	if in.OrderBy != "" {
		f.OrderBy = in.OrderBy
		f.OrderDir = "asc"
	}
	if in.OrderDir != "" {
		f.OrderDir = in.OrderDir
	}
	f.CreatedFrom = in.CreatedFrom
	f.CreatedTo = in.CreatedTo
	for k, v := range in.Filters {
		f = f.With(k, v)
	}
	return f
}

// RenderResult is a rendered report. Exported pdf and csv files carry a
// presigned URL when object storage is enabled.
type RenderResult struct {
	Format      string     `json:"format"`
	ContentType string     `json:"content_type"`
	Filename    string     `json:"filename"`
	Rows        int        `json:"rows"`
	Key         string     `json:"key,omitempty"`
	URL         string     `json:"url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Content     []byte     `json:"-"`
}

func toTemplateDTO(t *report.Template) TemplateDTO {
	return TemplateDTO{
		ID:            t.ID,
		Code:          t.Code,
		Name:          t.Name,
		Description:   t.Description,
		Entity:        string(t.Entity),
		Columns:       t.Columns,
		Body:          t.Body,
		DefaultFormat: string(t.DefaultFormat),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
}
