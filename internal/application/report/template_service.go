// Package report manages report templates and renders them over tenant data.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/report"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFPrinter prints an HTML document to PDF
type PDFPrinter interface {
	PrintPDF(ctx context.Context, title, html string) ([]byte, error)
}

// ObjectStorage stores exported files and signs download links
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// TemplateService manages report templates and renders them
type TemplateService struct {
	repo          report.Repository
	sources       map[report.Entity]RowSource
	printer       PDFPrinter
	storage       ObjectStorage
	presignExpiry time.Duration
	now           func() time.Time
}

// NewTemplateService creates a new template service. A nil printer disables
// pdf output; a nil storage returns exports inline only.
func NewTemplateService(
	repo report.Repository,
	sources map[report.Entity]RowSource,
	printer PDFPrinter,
	storage ObjectStorage,
	presignExpiry time.Duration,
) *TemplateService {
	return &TemplateService{
		repo:          repo,
		sources:       sources,
		printer:       printer,
		storage:       storage,
		presignExpiry: presignExpiry,
		now:           time.Now,
	}
}

// Create creates a report template
func (s *TemplateService) Create(ctx context.Context, input CreateTemplateInput) (*TemplateDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	entity, err := report.ParseEntity(input.Entity)
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(input.DefaultFormat, report.FormatHTML)
	if err != nil {
		return nil, err
	}
	t, err := report.NewTemplate(sess.TenantID, input.Code, input.Name, entity, input.Columns)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, sess.TenantID, t.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Report template code already exists")
	}
	if err := t.Update(input.Name, input.Description, input.Columns, input.Body, format); err != nil {
		return nil, err
	}
	t.SetCreatedBy(sess.UserID)

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	dto := toTemplateDTO(t)
	return &dto, nil
}

// Get returns a report template
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*TemplateDTO, error) {
	t, err := crud.Find(ctx, s.repo, id, "Report template")
	if err != nil {
		return nil, err
	}
	dto := toTemplateDTO(t)
	return &dto, nil
}

// List returns a page of report templates
func (s *TemplateService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TemplateDTO], error) {
	return crud.List(ctx, s.repo, filter, toTemplateDTO)
}

// Update changes a report template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, input UpdateTemplateInput) (*TemplateDTO, error) {
	t, err := crud.Find(ctx, s.repo, id, "Report template")
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(input.DefaultFormat, t.DefaultFormat)
	if err != nil {
		return nil, err
	}
	if err := t.Update(input.Name, input.Description, input.Columns, input.Body, format); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	dto := toTemplateDTO(t)
	return &dto, nil
}

// Delete removes a report template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return crud.Delete(ctx, s.repo, id, "Report template")
}

// Render loads the template's entity rows and renders them in the requested
// format. pdf and csv exports are uploaded when storage is enabled.
func (s *TemplateService) Render(ctx context.Context, id uuid.UUID, input RenderInput) (*RenderResult, error) {
	t, err := crud.Find(ctx, s.repo, id, "Report template")
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(input.Format, t.DefaultFormat)
	if err != nil {
		return nil, err
	}
	source, ok := s.sources[t.Entity]
	if !ok {
		return nil, shared.NewDomainError("INVALID_REPORT_ENTITY", "No data source for "+string(t.Entity))
	}
	records, err := source(ctx, input.filter())
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	table := newTable(t, records, now)

	var content []byte
	switch format {
	case report.FormatCSV:
		content, err = table.csv()
	case report.FormatPDF:
		if s.printer == nil {
			return nil, shared.NewDomainError("PDF_UNAVAILABLE", "PDF rendering is not configured")
		}
		var html []byte
		if html, err = table.html(t.Body); err == nil {
			content, err = s.printer.PrintPDF(ctx, t.Name, string(html))
		}
	default:
		content, err = table.html(t.Body)
	}
	if err != nil {
		return nil, err
	}

	result := &RenderResult{
		Format:      string(format),
		ContentType: format.ContentType(),
		Filename:    fmt.Sprintf("%s-%s.%s", t.Code, now.Format("20060102T150405Z"), format.Extension()),
		Rows:        len(records),
		Content:     content,
	}
	if s.storage != nil && format != report.FormatHTML {
		if err := s.export(ctx, t, now, result); err != nil {
			return nil, err
		}
	}
	logger.L(ctx).Info("Report rendered",
		zap.String("template", t.Code),
		zap.String("format", string(format)),
		zap.Int("rows", result.Rows))
	return result, nil
}

// export uploads under reports/<tenant id>/<template id>/<timestamp>.<ext>.
// Codes can be reused after a template is deleted, so the key uses the ID.
func (s *TemplateService) export(ctx context.Context, t *report.Template, at time.Time, result *RenderResult) error {
	key := fmt.Sprintf("reports/%s/%s/%s.%s", t.TenantID, t.ID, at.Format("20060102T150405Z"), result.Format)
	if err := s.storage.Upload(ctx, key, result.Content, result.ContentType); err != nil {
		return fmt.Errorf("upload report: %w", err)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.presignExpiry)
	if err != nil {
		return fmt.Errorf("sign report url: %w", err)
	}
	result.Key = key
	result.URL = url
	result.ExpiresAt = &expiresAt
	return nil
}
