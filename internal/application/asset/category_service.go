package asset

import (
	"context"

	"github.com/assetops/backend/internal/application/crud"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryService manages asset categories
type CategoryService struct {
	categoryRepo asset.CategoryRepository
	assetRepo    asset.AssetRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo asset.CategoryRepository, assetRepo asset.AssetRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, assetRepo: assetRepo}
}

// Create creates a category
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	category, err := asset.NewCategory(sess.TenantID, input.Code, input.Name, max(input.UsefulLifeMonths, 1))
	if err != nil {
		return nil, err
	}
	exists, err := s.categoryRepo.ExistsByCode(ctx, sess.TenantID, category.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category code already exists")
	}
	if err := s.apply(ctx, category, input); err != nil {
		return nil, err
	}
	category.SetCreatedBy(sess.UserID)

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Get returns a category
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := crud.Find(ctx, s.categoryRepo, id, "Category")
	if err != nil {
		return nil, err
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// List returns a page of categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryDTO], error) {
	return crud.List(ctx, s.categoryRepo, filter, toCategoryDTO)
}

// Update edits a category. Existing assets keep their own depreciation terms.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	category, err := crud.Find(ctx, s.categoryRepo, id, "Category")
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, category, input); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Delete removes a category that no asset references
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	if _, err := crud.Find(ctx, s.categoryRepo, id, "Category"); err != nil {
		return err
	}
	count, err := s.assetRepo.CountByCategory(ctx, sess.TenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category is used by existing assets")
	}
	return crud.Delete(ctx, s.categoryRepo, id, "Category")
}

func (s *CategoryService) apply(ctx context.Context, category *asset.Category, input CategoryInput) error {
	if input.ParentID != nil && *input.ParentID != category.ID {
		if err := crud.Ensure(ctx, s.categoryRepo, category.TenantID, input.ParentID, "parent_id"); err != nil {
			return err
		}
	}
	if err := category.Update(input.Name, input.Description, input.ParentID); err != nil {
		return err
	}
	method, err := asset.ParseDepreciationMethod(input.DepreciationMethod, asset.MethodStraightLine)
	if err != nil {
		return err
	}
	rate := decimal.Zero
	if input.ResidualRate != nil {
		rate = *input.ResidualRate
	}
	return category.SetDepreciation(method, input.UsefulLifeMonths, rate)
}
