package persistence

import (
	"context"
	"strings"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userCrud = GormCrudRepository[identity.User, models.UserModel, *models.UserModel]

// GormUserRepository implements UserRepository using GORM. Role assignments
// are kept in user_roles and loaded with every user.
type GormUserRepository struct {
	*userCrud
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		userCrud: newCrudRepository[identity.User, models.UserModel, *models.UserModel](db, listSpec{
			search:     []string{"email", "display_name", "phone"},
			sortFields: UserSortFields,
			filters:    set("status", "department_id"),
		}),
	}
}

// FindByIDForTenant finds a user by ID within a tenant
func (r *GormUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	user, err := r.userCrud.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return user, r.loadRoles(ctx, user)
}

// FindAllForTenant finds one page of a tenant's users
func (r *GormUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	users, err := r.userCrud.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return users, r.loadRolesBatch(ctx, users)
}

// FindByID finds a user in any tenant
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := r.first(r.where(ctx, "id = ?", id))
	if err != nil {
		return nil, err
	}
	return user, r.loadRoles(ctx, user)
}

// FindByEmail finds a user by email within a tenant
func (r *GormUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	user, err := r.first(r.scoped(ctx, tenantID).Where("LOWER(email) = ?", normalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	return user, r.loadRoles(ctx, user)
}

// FindAllByEmail finds the users with this email across tenants
func (r *GormUserRepository) FindAllByEmail(ctx context.Context, email string) ([]identity.User, error) {
	users, err := r.find(r.where(ctx, "LOWER(email) = ?", normalizeEmail(email)), "created_at ASC")
	if err != nil {
		return nil, err
	}
	return users, r.loadRolesBatch(ctx, users)
}

// ExistsByEmail checks if an email is taken within a tenant
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	return r.exists(r.scoped(ctx, tenantID).Where("LOWER(email) = ?", normalizeEmail(email)))
}

// CountByRole counts the users holding a role
func (r *GormUserRepository) CountByRole(ctx context.Context, tenantID, roleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID).
		Model(&models.UserRoleModel{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save stores the user and replaces its role assignments in one transaction
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &models.UserModel{}
		model.FromDomain(user)
		if err := saveVersioned(tx, model, model.ID, model.Version, "tenant_id = ?", model.TenantID); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		if len(user.RoleIDs) == 0 {
			return nil
		}
		links := make([]models.UserRoleModel, len(user.RoleIDs))
		for i, roleID := range user.RoleIDs {
			links[i] = models.UserRoleModel{
				UserID:   user.ID,
				RoleID:   roleID,
				TenantID: user.TenantID,
				Position: i,
			}
		}
		return tx.Create(&links).Error
	})
}

// DeleteForTenant deletes a user and its role assignments
func (r *GormUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND user_id = ?", tenantID, id).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.UserModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// loadRoles loads the user's role IDs in assignment order
func (r *GormUserRepository) loadRoles(ctx context.Context, user *identity.User) error {
	var links []models.UserRoleModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return err
	}
	user.RoleIDs = make([]uuid.UUID, len(links))
	for i, l := range links {
		user.RoleIDs[i] = l.RoleID
	}
	return nil
}

// loadRolesBatch loads role IDs for several users with one query
func (r *GormUserRepository) loadRolesBatch(ctx context.Context, users []identity.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	var links []models.UserRoleModel
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return err
	}
	byUser := make(map[uuid.UUID][]uuid.UUID, len(users))
	for _, l := range links {
		byUser[l.UserID] = append(byUser[l.UserID], l.RoleID)
	}
	for i := range users {
		if roles, ok := byUser[users[i].ID]; ok {
			users[i].RoleIDs = roles
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)

