package handler

import (
	"github.com/assetops/backend/internal/application/identity"
	"github.com/assetops/backend/internal/application/listview"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles platform tenant administration
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create godoc
// @ID           createTenant
// @Summary      Create a tenant
// @Description  Creates a tenant with its system roles and, when admin_email is set, an active admin user
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateTenantInput true "Tenant"
// @Success      201 {object} APIResponse[identity.TenantDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant [post]
func (h *TenantHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.tenantService.Create)
}

// Get godoc
// @ID           getTenant
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[identity.TenantDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.tenantService.Get)
}

// List godoc
// @ID           listTenants
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search code or name"
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "asc or desc"
// @Param        status    query string false "active, suspended or trial"
// @Success      200 {object} APIResponse[[]identity.TenantDTO]
// @Security     BearerAuth
// @Router       /tenant [get]
func (h *TenantHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.tenantService.List)
}

// Update godoc
// @ID           updateTenant
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Tenant ID" format(uuid)
// @Param        request body identity.UpdateTenantInput true "Tenant"
// @Success      200 {object} APIResponse[identity.TenantDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.tenantService.Update)
}

// Delete godoc
// @ID           deleteTenant
// @Summary      Delete a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.tenantService.Delete)
}

// Activate godoc
// @ID           activateTenant
// @Summary      Activate a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[identity.TenantDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/{id}/activate [post]
func (h *TenantHandler) Activate(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.tenantService.Activate)
}

// Suspend godoc
// @ID           suspendTenant
// @Summary      Suspend a tenant
// @Description  Suspended tenants are refused on every authenticated route
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[identity.TenantDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/{id}/suspend [post]
func (h *TenantHandler) Suspend(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.tenantService.Suspend)
}

// RoleHandler handles the roles of the caller's tenant
type RoleHandler struct {
	BaseHandler
	roleService *identity.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *identity.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create godoc
// @ID           createRole
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateRoleInput true "Role"
// @Success      201 {object} APIResponse[identity.RoleDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.roleService.Create)
}

// Get godoc
// @ID           getRole
// @Summary      Get a role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID" format(uuid)
// @Success      200 {object} APIResponse[identity.RoleDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.roleService.Get)
}

// List godoc
// @ID           listRoles
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Param        page           query int    false "Page" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Param        search         query string false "Search code or name"
// @Param        is_enabled     query bool   false "Enabled roles only"
// @Param        is_system_role query bool   false "System roles only"
// @Success      200 {object} APIResponse[[]identity.RoleDTO]
// @Security     BearerAuth
// @Router       /tenant/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.roleService.List)
}

// Update godoc
// @ID           updateRole
// @Summary      Update a role
// @Description  System roles keep their name
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Role ID" format(uuid)
// @Param        request body identity.UpdateRoleInput true "Role"
// @Success      200 {object} APIResponse[identity.RoleDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.roleService.Update)
}

// Delete godoc
// @ID           deleteRole
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.roleService.Delete)
}

// SetPermissions godoc
// @ID           setRolePermissions
// @Summary      Replace a role's permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Role ID" format(uuid)
// @Param        request body identity.SetPermissionsInput true "Permission codes"
// @Success      200 {object} APIResponse[identity.RoleDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.roleService.SetPermissions)
}

// Permissions godoc
// @ID           listPermissions
// @Summary      Permission catalog
// @Description  Lists every resource:action permission. Filtering, sorting and paging follow the console list view.
// @Tags         roles
// @Produce      json
// @Param        search    query string false "Case-insensitive search"
// @Param        sort      query string false "Sort field"
// @Param        desc      query bool   false "Sort descending"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(10)
// @Success      200 {object} APIResponse[listview.Page]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenant/permissions [get]
func (h *RoleHandler) Permissions(c *gin.Context) {
	q, ok := h.ListViewQuery(c)
	if !ok {
		return
	}
	page, err := h.roleService.Permissions(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(&h.BaseHandler, c, &shared.Paginated[listview.Record]{
		Items:    page.Rows,
		Total:    int64(page.Total),
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}
