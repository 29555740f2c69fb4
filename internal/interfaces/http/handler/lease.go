package handler

import (
	"github.com/assetops/backend/internal/application/lease"
	"github.com/assetops/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles business partners
type PartnerHandler struct {
	BaseHandler
	partnerService *partner.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partner.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create godoc
// @ID           createPartner
// @Summary      Create a partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partner.PartnerInput true "Partner"
// @Success      201 {object} APIResponse[partner.PartnerDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.partnerService.Create)
}

// Get godoc
// @ID           getPartner
// @Summary      Get a partner
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[partner.PartnerDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [get]
func (h *PartnerHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.partnerService.Get)
}

// List godoc
// @ID           listPartners
// @Summary      List partners
// @Tags         partners
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search code, name or email"
// @Param        type      query string false "supplier, lessor, lessee, customer or other"
// @Param        active    query bool   false "Active only"
// @Success      200 {object} APIResponse[[]partner.PartnerDTO]
// @Security     BearerAuth
// @Router       /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.partnerService.List)
}

// Update godoc
// @ID           updatePartner
// @Summary      Update a partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Partner ID" format(uuid)
// @Param        request body partner.PartnerInput true "Partner"
// @Success      200 {object} APIResponse[partner.PartnerDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.partnerService.Update)
}

// Delete godoc
// @ID           deletePartner
// @Summary      Delete a partner
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.partnerService.Delete)
}

// ContractHandler handles contracts
type ContractHandler struct {
	BaseHandler
	contractService *lease.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *lease.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create godoc
// @ID           createContract
// @Summary      Create a contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        request body lease.CreateContractInput true "Contract"
// @Success      201 {object} APIResponse[lease.ContractDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.contractService.Create)
}

// Get godoc
// @ID           getContract
// @Summary      Get a contract
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} APIResponse[lease.ContractDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.contractService.Get)
}

// List godoc
// @ID           listContracts
// @Summary      List contracts
// @Tags         contracts
// @Produce      json
// @Param        page       query int    false "Page" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Param        search     query string false "Search number or title"
// @Param        status     query string false "draft, active or terminated"
// @Param        partner_id query string false "Partner" format(uuid)
// @Success      200 {object} APIResponse[[]lease.ContractDTO]
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.contractService.List)
}

// Update godoc
// @ID           updateContract
// @Summary      Update a contract
// @Description  Status active activates a draft and terminated ends an active contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Contract ID" format(uuid)
// @Param        request body lease.UpdateContractInput true "Contract"
// @Success      200 {object} APIResponse[lease.ContractDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.contractService.Update)
}

// Delete godoc
// @ID           deleteContract
// @Summary      Delete a contract
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.contractService.Delete)
}

// LeaseHandler handles leases
type LeaseHandler struct {
	BaseHandler
	leaseService *lease.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService *lease.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// Create godoc
// @ID           createLease
// @Summary      Create a lease
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        request body lease.LeaseInput true "Lease"
// @Success      201 {object} APIResponse[lease.LeaseDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases [post]
func (h *LeaseHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.leaseService.Create)
}

// Get godoc
// @ID           getLease
// @Summary      Get a lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[lease.LeaseDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases/{id} [get]
func (h *LeaseHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.leaseService.Get)
}

// List godoc
// @ID           listLeases
// @Summary      List leases
// @Tags         leases
// @Produce      json
// @Param        page       query int    false "Page" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Param        status     query string false "active or terminated"
// @Param        direction  query string false "lessee or lessor"
// @Param        asset_id   query string false "Asset" format(uuid)
// @Param        partner_id query string false "Partner" format(uuid)
// @Success      200 {object} APIResponse[[]lease.LeaseDTO]
// @Security     BearerAuth
// @Router       /leases [get]
func (h *LeaseHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.leaseService.List)
}

// Update godoc
// @ID           updateLease
// @Summary      Update a lease
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id      path string           true "Lease ID" format(uuid)
// @Param        request body lease.LeaseInput true "Lease"
// @Success      200 {object} APIResponse[lease.LeaseDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases/{id} [put]
func (h *LeaseHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.leaseService.Update)
}

// Delete godoc
// @ID           deleteLease
// @Summary      Delete a lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases/{id} [delete]
func (h *LeaseHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.leaseService.Delete)
}

// Schedule godoc
// @ID           getLeaseSchedule
// @Summary      Payment schedule of a lease
// @Description  Lists every payment with its discount factor and present value
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[lease.ScheduleDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases/{id}/schedule [get]
func (h *LeaseHandler) Schedule(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.leaseService.Schedule)
}

// Terminate godoc
// @ID           terminateLease
// @Summary      Terminate a lease
// @Description  The date defaults to today
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id      path string               true  "Lease ID" format(uuid)
// @Param        request body lease.TerminateInput false "Termination date"
// @Success      200 {object} APIResponse[lease.LeaseDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leases/{id}/terminate [post]
func (h *LeaseHandler) Terminate(c *gin.Context) {
	runActionWithBody(&h.BaseHandler, c, h.leaseService.Terminate)
}
