package handler

import (
	"github.com/assetops/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles the users of the caller's tenant
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @ID           createUser
// @Summary      Create a user
// @Description  New users are pending unless activate is true
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateUserInput true "User"
// @Success      201 {object} APIResponse[identity.UserDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.userService.Create)
}

// Get godoc
// @ID           getUser
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identity.UserDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.userService.Get)
}

// List godoc
// @ID           listUsers
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page          query int    false "Page" default(1)
// @Param        page_size     query int    false "Page size" default(20)
// @Param        search        query string false "Search email or name"
// @Param        status        query string false "pending, active, locked or deactivated"
// @Param        department_id query string false "Department ID" format(uuid)
// @Success      200 {object} APIResponse[[]identity.UserDTO]
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.userService.List)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "User ID" format(uuid)
// @Param        request body identity.UpdateUserInput true "Profile"
// @Success      200 {object} APIResponse[identity.UserDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.userService.Update)
}

// Delete godoc
// @ID           deleteUser
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.userService.Delete)
}

// SetRoles godoc
// @ID           setUserRoles
// @Summary      Replace a user's roles
// @Description  The first role is the session role of the user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "User ID" format(uuid)
// @Param        request body identity.SetRolesInput true "Role IDs"
// @Success      200 {object} APIResponse[identity.UserDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/roles [put]
func (h *UserHandler) SetRoles(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.userService.SetRoles)
}

// Activate godoc
// @ID           activateUser
// @Summary      Activate a user
// @Description  Activates a pending user or unlocks a locked one
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identity.UserDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.userService.Activate)
}

// Deactivate godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Description  Deactivation revokes the user's tokens
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identity.UserDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.userService.Deactivate)
}

// DepartmentHandler handles departments
type DepartmentHandler struct {
	BaseHandler
	departmentService *identity.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService *identity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// Create godoc
// @ID           createDepartment
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateDepartmentInput true "Department"
// @Success      201 {object} APIResponse[identity.DepartmentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /department/departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.departmentService.Create)
}

// Get godoc
// @ID           getDepartment
// @Summary      Get a department
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[identity.DepartmentDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /department/departments/{id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.departmentService.Get)
}

// List godoc
// @ID           listDepartments
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Param        page       query int    false "Page" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Param        search     query string false "Search code or name"
// @Param        parent_id  query string false "Parent department" format(uuid)
// @Param        manager_id query string false "Manager user" format(uuid)
// @Param        level      query int    false "Depth in the hierarchy"
// @Success      200 {object} APIResponse[[]identity.DepartmentDTO]
// @Security     BearerAuth
// @Router       /department/departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.departmentService.List)
}

// Update godoc
// @ID           updateDepartment
// @Summary      Update a department
// @Description  Moving a department under one of its descendants is rejected
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Department ID" format(uuid)
// @Param        request body identity.UpdateDepartmentInput true "Department"
// @Success      200 {object} APIResponse[identity.DepartmentDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /department/departments/{id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.departmentService.Update)
}

// Delete godoc
// @ID           deleteDepartment
// @Summary      Delete a department
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /department/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.departmentService.Delete)
}
