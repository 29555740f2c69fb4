package handler

import (
	"github.com/assetops/backend/internal/application/asset"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles asset categories
type CategoryHandler struct {
	BaseHandler
	categoryService *asset.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *asset.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @ID           createCategory
// @Summary      Create an asset category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body asset.CategoryInput true "Category"
// @Success      201 {object} APIResponse[asset.CategoryDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /category [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.categoryService.Create)
}

// Get godoc
// @ID           getCategory
// @Summary      Get an asset category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[asset.CategoryDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /category/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.categoryService.Get)
}

// List godoc
// @ID           listCategories
// @Summary      List asset categories
// @Tags         categories
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search code or name"
// @Param        parent_id query string false "Parent category" format(uuid)
// @Param        method    query string false "straight_line, declining_balance or none"
// @Success      200 {object} APIResponse[[]asset.CategoryDTO]
// @Security     BearerAuth
// @Router       /category [get]
func (h *CategoryHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.categoryService.List)
}

// Update godoc
// @ID           updateCategory
// @Summary      Update an asset category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Category ID" format(uuid)
// @Param        request body asset.CategoryInput true "Category"
// @Success      200 {object} APIResponse[asset.CategoryDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /category/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.categoryService.Update)
}

// Delete godoc
// @ID           deleteCategory
// @Summary      Delete an asset category
// @Description  Categories still used by assets cannot be deleted
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /category/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.categoryService.Delete)
}

// LocationHandler handles locations
type LocationHandler struct {
	BaseHandler
	locationService *asset.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *asset.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create godoc
// @ID           createLocation
// @Summary      Create a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body asset.LocationInput true "Location"
// @Success      201 {object} APIResponse[asset.LocationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.locationService.Create)
}

// Get godoc
// @ID           getLocation
// @Summary      Get a location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[asset.LocationDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.locationService.Get)
}

// List godoc
// @ID           listLocations
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search code, name or city"
// @Param        parent_id query string false "Parent location" format(uuid)
// @Param        city      query string false "City"
// @Param        country   query string false "Country"
// @Success      200 {object} APIResponse[[]asset.LocationDTO]
// @Security     BearerAuth
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.locationService.List)
}

// Update godoc
// @ID           updateLocation
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Location ID" format(uuid)
// @Param        request body asset.LocationInput true "Location"
// @Success      200 {object} APIResponse[asset.LocationDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.locationService.Update)
}

// Delete godoc
// @ID           deleteLocation
// @Summary      Delete a location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.locationService.Delete)
}

// CostCentreHandler handles cost centres
type CostCentreHandler struct {
	BaseHandler
	costCentreService *asset.CostCentreService
}

// NewCostCentreHandler creates a new CostCentreHandler
func NewCostCentreHandler(costCentreService *asset.CostCentreService) *CostCentreHandler {
	return &CostCentreHandler{costCentreService: costCentreService}
}

// Create godoc
// @ID           createCostCentre
// @Summary      Create a cost centre
// @Tags         cost-centres
// @Accept       json
// @Produce      json
// @Param        request body asset.CostCentreInput true "Cost centre"
// @Success      201 {object} APIResponse[asset.CostCentreDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cost-centres [post]
func (h *CostCentreHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.costCentreService.Create)
}

// Get godoc
// @ID           getCostCentre
// @Summary      Get a cost centre
// @Tags         cost-centres
// @Produce      json
// @Param        id path string true "Cost centre ID" format(uuid)
// @Success      200 {object} APIResponse[asset.CostCentreDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cost-centres/{id} [get]
func (h *CostCentreHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.costCentreService.Get)
}

// List godoc
// @ID           listCostCentres
// @Summary      List cost centres
// @Tags         cost-centres
// @Produce      json
// @Param        page          query int    false "Page" default(1)
// @Param        page_size     query int    false "Page size" default(20)
// @Param        search        query string false "Search code or name"
// @Param        department_id query string false "Department" format(uuid)
// @Param        active        query bool   false "Active only"
// @Success      200 {object} APIResponse[[]asset.CostCentreDTO]
// @Security     BearerAuth
// @Router       /cost-centres [get]
func (h *CostCentreHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.costCentreService.List)
}

// Update godoc
// @ID           updateCostCentre
// @Summary      Update a cost centre
// @Tags         cost-centres
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Cost centre ID" format(uuid)
// @Param        request body asset.CostCentreInput true "Cost centre"
// @Success      200 {object} APIResponse[asset.CostCentreDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cost-centres/{id} [put]
func (h *CostCentreHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.costCentreService.Update)
}

// Delete godoc
// @ID           deleteCostCentre
// @Summary      Delete a cost centre
// @Tags         cost-centres
// @Produce      json
// @Param        id path string true "Cost centre ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cost-centres/{id} [delete]
func (h *CostCentreHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.costCentreService.Delete)
}
