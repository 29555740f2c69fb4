package handler

import (
	"github.com/assetops/backend/internal/application/asset"
	"github.com/gin-gonic/gin"
)

// AssetHandler handles assets and their components
type AssetHandler struct {
	BaseHandler
	assetService *asset.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *asset.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create godoc
// @ID           createAsset
// @Summary      Register an asset
// @Description  Depreciation method and useful life default to the category's
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body asset.CreateAssetInput true "Asset"
// @Success      201 {object} APIResponse[asset.AssetDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.assetService.Create)
}

// Get godoc
// @ID           getAsset
// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[asset.AssetDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.assetService.Get)
}

// List godoc
// @ID           listAssets
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Param        page           query int    false "Page" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Param        search         query string false "Search tag, name or serial number"
// @Param        order_by       query string false "Sort field"
// @Param        order_dir      query string false "asc or desc"
// @Param        created_from   query string false "RFC 3339 or YYYY-MM-DD"
// @Param        created_to     query string false "RFC 3339 or YYYY-MM-DD"
// @Param        status         query string false "in_use, in_storage, under_maintenance or disposed"
// @Param        category_id    query string false "Category" format(uuid)
// @Param        location_id    query string false "Location" format(uuid)
// @Param        department_id  query string false "Department" format(uuid)
// @Param        cost_centre_id query string false "Cost centre" format(uuid)
// @Param        custodian_id   query string false "Custodian user" format(uuid)
// @Success      200 {object} APIResponse[[]asset.AssetDTO]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.assetService.List)
}

// Update godoc
// @ID           updateAsset
// @Summary      Update an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Asset ID" format(uuid)
// @Param        request body asset.UpdateAssetInput true "Asset"
// @Success      200 {object} APIResponse[asset.AssetDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id} [put]
func (h *AssetHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.assetService.Update)
}

// Delete godoc
// @ID           deleteAsset
// @Summary      Delete an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.assetService.Delete)
}

// Dispose godoc
// @ID           disposeAsset
// @Summary      Dispose an asset
// @Description  The date defaults to today. A disposed asset is read-only.
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string             true  "Asset ID" format(uuid)
// @Param        request body asset.DisposeInput false "Disposal"
// @Success      200 {object} APIResponse[asset.AssetDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/dispose [post]
func (h *AssetHandler) Dispose(c *gin.Context) {
	runActionWithBody(&h.BaseHandler, c, h.assetService.Dispose)
}

// Transfer godoc
// @ID           transferAsset
// @Summary      Transfer an asset
// @Description  Moves the asset to another location, department, cost centre or custodian
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Asset ID" format(uuid)
// @Param        request body asset.TransferInput true "New assignment"
// @Success      200 {object} APIResponse[asset.AssetDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/transfer [post]
func (h *AssetHandler) Transfer(c *gin.Context) {
	runActionWithBody(&h.BaseHandler, c, h.assetService.Transfer)
}

// Components godoc
// @ID           listAssetComponents
// @Summary      List an asset's components
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[[]asset.ComponentDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/components [get]
func (h *AssetHandler) Components(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	components, err := h.assetService.Components(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if components == nil {
		components = []asset.ComponentDTO{}
	}
	h.Success(c, components)
}

// AddComponent godoc
// @ID           addAssetComponent
// @Summary      Fit a component to an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Asset ID" format(uuid)
// @Param        request body asset.ComponentInput true "Component"
// @Success      201 {object} APIResponse[asset.ComponentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/components [post]
func (h *AssetHandler) AddComponent(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var input asset.ComponentInput
	if !h.BindJSON(c, &input) {
		return
	}
	component, err := h.assetService.AddComponent(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, component)
}

// RemoveComponent godoc
// @ID           removeAssetComponent
// @Summary      Remove a component
// @Tags         assets
// @Produce      json
// @Param        id          path string true "Asset ID" format(uuid)
// @Param        componentId path string true "Component ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/components/{componentId} [delete]
func (h *AssetHandler) RemoveComponent(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	componentID, ok := h.ParseID(c, "componentId")
	if !ok {
		return
	}
	if err := h.assetService.RemoveComponent(c.Request.Context(), id, componentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c)
}

// WipAssetHandler handles assets under construction
type WipAssetHandler struct {
	BaseHandler
	wipService *asset.WipAssetService
}

// NewWipAssetHandler creates a new WipAssetHandler
func NewWipAssetHandler(wipService *asset.WipAssetService) *WipAssetHandler {
	return &WipAssetHandler{wipService: wipService}
}

// Create godoc
// @ID           createWipAsset
// @Summary      Start an asset under construction
// @Tags         wip-assets
// @Accept       json
// @Produce      json
// @Param        request body asset.CreateWipAssetInput true "WIP asset"
// @Success      201 {object} APIResponse[asset.WipAssetDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets [post]
func (h *WipAssetHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.wipService.Create)
}

// Get godoc
// @ID           getWipAsset
// @Summary      Get a WIP asset
// @Tags         wip-assets
// @Produce      json
// @Param        id path string true "WIP asset ID" format(uuid)
// @Success      200 {object} APIResponse[asset.WipAssetDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets/{id} [get]
func (h *WipAssetHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.wipService.Get)
}

// List godoc
// @ID           listWipAssets
// @Summary      List WIP assets
// @Tags         wip-assets
// @Produce      json
// @Param        page        query int    false "Page" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Param        search      query string false "Search code or name"
// @Param        status      query string false "in_progress, completed, cancelled or capitalized"
// @Param        category_id query string false "Category" format(uuid)
// @Success      200 {object} APIResponse[[]asset.WipAssetDTO]
// @Security     BearerAuth
// @Router       /wip-assets [get]
func (h *WipAssetHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.wipService.List)
}

// Update godoc
// @ID           updateWipAsset
// @Summary      Update a WIP asset
// @Tags         wip-assets
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "WIP asset ID" format(uuid)
// @Param        request body asset.UpdateWipAssetInput true "WIP asset"
// @Success      200 {object} APIResponse[asset.WipAssetDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets/{id} [put]
func (h *WipAssetHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.wipService.Update)
}

// Delete godoc
// @ID           deleteWipAsset
// @Summary      Delete a WIP asset
// @Tags         wip-assets
// @Produce      json
// @Param        id path string true "WIP asset ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets/{id} [delete]
func (h *WipAssetHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.wipService.Delete)
}

// AddCost godoc
// @ID           addWipAssetCost
// @Summary      Book a cost
// @Tags         wip-assets
// @Accept       json
// @Produce      json
// @Param        id      path string             true "WIP asset ID" format(uuid)
// @Param        request body asset.AddCostInput true "Cost"
// @Success      200 {object} APIResponse[asset.WipAssetDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets/{id}/costs [post]
func (h *WipAssetHandler) AddCost(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.wipService.AddCost)
}

// Capitalize godoc
// @ID           capitalizeWipAsset
// @Summary      Capitalize into an asset
// @Description  Creates an asset costed at the accumulated cost and closes the WIP
// @Tags         wip-assets
// @Accept       json
// @Produce      json
// @Param        id      path string                true "WIP asset ID" format(uuid)
// @Param        request body asset.CapitalizeInput true "Asset tag and date"
// @Success      201 {object} APIResponse[asset.CapitalizeResult]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wip-assets/{id}/capitalize [post]
func (h *WipAssetHandler) Capitalize(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var input asset.CapitalizeInput
	if !h.BindJSON(c, &input) {
		return
	}
	result, err := h.wipService.Capitalize(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
