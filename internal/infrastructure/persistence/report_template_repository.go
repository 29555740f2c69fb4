package persistence

import (
	"context"

	"github.com/assetops/backend/internal/domain/report"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportCrud = GormCrudRepository[report.Template, models.ReportTemplateModel, *models.ReportTemplateModel]

// GormReportTemplateRepository implements report.Repository using GORM
type GormReportTemplateRepository struct {
	*reportCrud
}

// NewGormReportTemplateRepository creates a new GormReportTemplateRepository
func NewGormReportTemplateRepository(db *gorm.DB) *GormReportTemplateRepository {
	return &GormReportTemplateRepository{
		reportCrud: newCrudRepository[report.Template, models.ReportTemplateModel, *models.ReportTemplateModel](db, listSpec{
			search:     []string{"code", "name", "description"},
			sortFields: ReportSortFields,
			filters:    set("entity", "default_format"),
		}),
	}
}

// ExistsByCode checks if a template code exists within a tenant
func (r *GormReportTemplateRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	return r.exists(r.scoped(ctx, tenantID).Where("code = ?", codeOf(code)))
}

// Ensure GormReportTemplateRepository implements report.Repository
var _ report.Repository = (*GormReportTemplateRepository)(nil)
