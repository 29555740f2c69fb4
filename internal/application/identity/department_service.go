package identity

import (
	"context"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentService manages the department tree
type DepartmentService struct {
	deptRepo identity.DepartmentRepository
}

// NewDepartmentService creates a new department service
func NewDepartmentService(deptRepo identity.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// Create creates a department, under parent_id when given
func (s *DepartmentService) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	dept, err := identity.NewDepartment(sess.TenantID, input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.deptRepo.ExistsByCode(ctx, sess.TenantID, dept.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Department code already exists")
	}
	if err := dept.Update(input.Name, input.Description, input.ManagerID, true); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if err := s.moveUnder(ctx, dept, input.ParentID); err != nil {
			return nil, err
		}
	}
	dept.SetCreatedBy(sess.UserID)

	if err := s.deptRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(dept)
	return &dto, nil
}

// Get returns a department
func (s *DepartmentService) Get(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	dept, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(dept)
	return &dto, nil
}

// List returns a page of departments
func (s *DepartmentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[DepartmentDTO], error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	depts, err := s.deptRepo.FindAllForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.deptRepo.CountForTenant(ctx, sess.TenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(mapSlice(depts, toDepartmentDTO), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces a department's fields. A department with children keeps
// its place in the tree.
func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, input UpdateDepartmentInput) (*DepartmentDTO, error) {
	dept, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	active := dept.IsActive()
	if input.Active != nil {
		active = *input.Active
	}
	if err := dept.Update(input.Name, input.Description, input.ManagerID, active); err != nil {
		return nil, err
	}
	if !sameParent(dept.ParentID, input.ParentID) {
		children, err := s.deptRepo.CountChildren(ctx, dept.TenantID, dept.ID)
		if err != nil {
			return nil, err
		}
		if children > 0 {
			return nil, shared.NewDomainError("DEPARTMENT_HAS_CHILDREN", "Departments with sub-departments cannot be moved")
		}
		if err := s.moveUnder(ctx, dept, input.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.deptRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(dept)
	return &dto, nil
}

// Delete removes a department without sub-departments
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	dept, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	children, err := s.deptRepo.CountChildren(ctx, dept.TenantID, dept.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_CHILDREN", "Delete the sub-departments first")
	}
	if err := s.deptRepo.DeleteForTenant(ctx, dept.TenantID, dept.ID); err != nil {
		return shared.MapNotFound(err, "Department")
	}
	return nil
}

func (s *DepartmentService) moveUnder(ctx context.Context, dept *identity.Department, parentID *uuid.UUID) error {
	if parentID == nil {
		return dept.SetParent(nil)
	}
	parent, err := s.deptRepo.FindByIDForTenant(ctx, dept.TenantID, *parentID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_PARENT", "Parent department does not exist")
		}
		return err
	}
	return dept.SetParent(parent)
}

func (s *DepartmentService) find(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	dept, err := s.deptRepo.FindByIDForTenant(ctx, sess.TenantID, id)
	if err != nil {
		return nil, shared.MapNotFound(err, "Department")
	}
	return dept, nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
