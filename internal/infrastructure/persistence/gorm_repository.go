package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tenantModel is a GORM model that converts to and from the domain aggregate D.
// M is the model struct, the constraint is satisfied by *M.
type tenantModel[D any, M any] interface {
	*M
	ToDomain() *D
	FromDomain(*D)
	GetID() uuid.UUID
	GetVersion() int
	GetTenantID() uuid.UUID
}

// listSpec configures how a repository searches, sorts and filters lists
type listSpec struct {
	// search lists the text columns matched by Filter.Search
	search []string
	// sortFields is the order_by whitelist
	sortFields map[string]bool
	// filters lists the columns accepted as exact-match filters
	filters map[string]bool
	// scopes handles filter keys that are not plain column matches
	scopes map[string]func(query *gorm.DB, value interface{}) *gorm.DB
}

// GormCrudRepository implements shared.CrudRepository over a tenant-scoped
// model with optimistic locking on the version column.
type GormCrudRepository[D any, M any, PM tenantModel[D, M]] struct {
	db   *gorm.DB
	spec listSpec
}

func newCrudRepository[D any, M any, PM tenantModel[D, M]](db *gorm.DB, spec listSpec) *GormCrudRepository[D, M, PM] {
	if spec.sortFields == nil {
		spec.sortFields = CommonSortFields
	}
	return &GormCrudRepository[D, M, PM]{db: db, spec: spec}
}

// FindByIDForTenant finds an entity by ID within a tenant
func (r *GormCrudRepository[D, M, PM]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*D, error) {
	return r.first(r.scoped(ctx, tenantID).Where("id = ?", id))
}

// FindAllForTenant finds one page of a tenant's entities
func (r *GormCrudRepository[D, M, PM]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]D, error) {
	var rows []M
	query := r.applyFilter(r.scoped(ctx, tenantID).Model(new(M)), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice[D, M, PM](rows), nil
}

// CountForTenant counts a tenant's entities matching the filter
func (r *GormCrudRepository[D, M, PM]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.scoped(ctx, tenantID).Model(new(M)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new entity or updates an existing one. An update only
// applies when the stored version is older than the entity's version, so a
// writer holding a stale copy gets CONCURRENCY_CONFLICT.
func (r *GormCrudRepository[D, M, PM]) Save(ctx context.Context, entity *D) error {
	m := PM(new(M))
	m.FromDomain(entity)
	return saveVersioned(r.db.WithContext(ctx), m, m.GetID(), m.GetVersion(), "tenant_id = ?", m.GetTenantID())
}

// DeleteForTenant deletes an entity within a tenant
func (r *GormCrudRepository[D, M, PM]) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.scoped(ctx, tenantID).Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// scoped starts a query limited to one tenant
func (r *GormCrudRepository[D, M, PM]) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
}

// where starts an unscoped query with a condition
func (r *GormCrudRepository[D, M, PM]) where(ctx context.Context, query string, args ...interface{}) *gorm.DB {
	return r.db.WithContext(ctx).Where(query, args...)
}

// first loads the first entity of the query
func (r *GormCrudRepository[D, M, PM]) first(query *gorm.DB) (*D, error) {
	m := PM(new(M))
	if err := query.First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// find loads every entity of the query in order
func (r *GormCrudRepository[D, M, PM]) find(query *gorm.DB, order string) ([]D, error) {
	var rows []M
	if err := query.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice[D, M, PM](rows), nil
}

// count counts the entities of the query
func (r *GormCrudRepository[D, M, PM]) count(query *gorm.DB) (int64, error) {
	var count int64
	if err := query.Model(new(M)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// exists reports whether the query matches any entity
func (r *GormCrudRepository[D, M, PM]) exists(query *gorm.DB) (bool, error) {
	count, err := r.count(query)
	return count > 0, err
}

// applyFilter applies filter options to the query
func (r *GormCrudRepository[D, M, PM]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, r.spec.sortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).Order("id ASC")
}

// applyFilterWithoutPagination applies search, created range and column filters
func (r *GormCrudRepository[D, M, PM]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, r.spec.search, filter.Search)

	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	for key, value := range filter.Filters {
		if scope, ok := r.spec.scopes[key]; ok {
			query = scope(query, value)
			continue
		}
		if r.spec.filters[key] {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applySearch matches the search text against columns, case-insensitively.
// Wildcards in the text match literally.
func applySearch(query *gorm.DB, columns []string, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	op := "ILIKE"
	if query.Dialector.Name() != "postgres" {
		op = "LIKE"
	}
	pattern := "%" + likeEscaper.Replace(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " " + op + ` ? ESCAPE '\'`
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// saveVersioned updates the row when the stored version is older and inserts
// it when absent. scope, when set, adds the ownership condition of the row.
func saveVersioned(db *gorm.DB, model interface{}, id uuid.UUID, version int, scope string, scopeArgs ...interface{}) error {
	cond := "version < ?"
	if scope != "" {
		cond = scope + " AND " + cond
	}
	result := db.Model(model).
		Where(cond, append(scopeArgs, version)...).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrConcurrencyConflict
	}
	return db.Create(model).Error
}

func toDomainSlice[D any, M any, PM tenantModel[D, M]](rows []M) []D {
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = *PM(&rows[i]).ToDomain()
	}
	return out
}
