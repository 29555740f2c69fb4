package handler

import (
	"strings"

	"github.com/assetops/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles capital budgets
type BudgetHandler struct {
	BaseHandler
	budgetService *finance.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *finance.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Create godoc
// @ID           createBudget
// @Summary      Create a budget
// @Description  Budgets start as drafts
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        request body finance.BudgetInput true "Budget"
// @Success      201 {object} APIResponse[finance.BudgetDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.budgetService.Create)
}

// Get godoc
// @ID           getBudget
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[finance.BudgetDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.budgetService.Get)
}

// List godoc
// @ID           listBudgets
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Param        page           query int    false "Page" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Param        search         query string false "Search code or name"
// @Param        status         query string false "draft, approved or closed"
// @Param        fiscal_year    query int    false "Fiscal year"
// @Param        cost_centre_id query string false "Cost centre" format(uuid)
// @Success      200 {object} APIResponse[[]finance.BudgetDTO]
// @Security     BearerAuth
// @Router       /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.budgetService.List)
}

// Update godoc
// @ID           updateBudget
// @Summary      Update a draft budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Budget ID" format(uuid)
// @Param        request body finance.BudgetInput true "Budget"
// @Success      200 {object} APIResponse[finance.BudgetDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.budgetService.Update)
}

// Delete godoc
// @ID           deleteBudget
// @Summary      Delete a draft budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.budgetService.Delete)
}

// Approve godoc
// @ID           approveBudget
// @Summary      Approve a draft budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[finance.BudgetDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id}/approve [post]
func (h *BudgetHandler) Approve(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.budgetService.Approve)
}

// Close godoc
// @ID           closeBudget
// @Summary      Close an approved budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[finance.BudgetDTO]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id}/close [post]
func (h *BudgetHandler) Close(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.budgetService.Close)
}

// ForexHandler handles exchange rates and conversions
type ForexHandler struct {
	BaseHandler
	forexService *finance.ForexService
}

// NewForexHandler creates a new ForexHandler
func NewForexHandler(forexService *finance.ForexService) *ForexHandler {
	return &ForexHandler{forexService: forexService}
}

// Create godoc
// @ID           createForexRate
// @Summary      Record an exchange rate
// @Tags         forex-rates
// @Accept       json
// @Produce      json
// @Param        request body finance.CreateForexRateInput true "Rate"
// @Success      201 {object} APIResponse[finance.ForexRateDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forex-rates [post]
func (h *ForexHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.forexService.Create)
}

// Get godoc
// @ID           getForexRate
// @Summary      Get an exchange rate
// @Tags         forex-rates
// @Produce      json
// @Param        id path string true "Rate ID" format(uuid)
// @Success      200 {object} APIResponse[finance.ForexRateDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forex-rates/{id} [get]
func (h *ForexHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.forexService.Get)
}

// List godoc
// @ID           listForexRates
// @Summary      List exchange rates
// @Tags         forex-rates
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        base      query string false "Base currency"
// @Param        quote     query string false "Quote currency"
// @Success      200 {object} APIResponse[[]finance.ForexRateDTO]
// @Security     BearerAuth
// @Router       /forex-rates [get]
func (h *ForexHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.forexService.List)
}

// Update godoc
// @ID           updateForexRate
// @Summary      Update an exchange rate
// @Tags         forex-rates
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Rate ID" format(uuid)
// @Param        request body finance.UpdateForexRateInput true "Rate"
// @Success      200 {object} APIResponse[finance.ForexRateDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forex-rates/{id} [put]
func (h *ForexHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.forexService.Update)
}

// Delete godoc
// @ID           deleteForexRate
// @Summary      Delete an exchange rate
// @Tags         forex-rates
// @Produce      json
// @Param        id path string true "Rate ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forex-rates/{id} [delete]
func (h *ForexHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.forexService.Delete)
}

// Convert godoc
// @ID           convertCurrency
// @Summary      Convert an amount
// @Description  Uses the latest rate effective on the date, direct or inverse
// @Tags         forex-rates
// @Produce      json
// @Param        from   query string true  "Source currency"
// @Param        to     query string true  "Target currency"
// @Param        amount query string true  "Decimal amount"
// @Param        date   query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {object} APIResponse[finance.ConversionDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forex-rates/convert [get]
func (h *ForexHandler) Convert(c *gin.Context) {
	var input finance.ConvertInput
	if !h.BindQuery(c, &input) {
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(c.Query("amount")))
	if err != nil {
		h.BadRequest(c, "amount must be a decimal number")
		return
	}
	input.Amount = amount

	result, err := h.forexService.Convert(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DepreciationHandler handles depreciation records and runs
type DepreciationHandler struct {
	BaseHandler
	depreciationService *finance.DepreciationService
}

// NewDepreciationHandler creates a new DepreciationHandler
func NewDepreciationHandler(depreciationService *finance.DepreciationService) *DepreciationHandler {
	return &DepreciationHandler{depreciationService: depreciationService}
}

// Get godoc
// @ID           getDepreciationRecord
// @Summary      Get a depreciation record
// @Tags         depreciation
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} APIResponse[finance.DepreciationRecordDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /depreciation/{id} [get]
func (h *DepreciationHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.depreciationService.Get)
}

// List godoc
// @ID           listDepreciationRecords
// @Summary      List depreciation records
// @Tags         depreciation
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        asset_id  query string false "Asset" format(uuid)
// @Param        period    query string false "YYYY-MM"
// @Success      200 {object} APIResponse[[]finance.DepreciationRecordDTO]
// @Security     BearerAuth
// @Router       /depreciation [get]
func (h *DepreciationHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.depreciationService.List)
}

// Run godoc
// @ID           runDepreciation
// @Summary      Run depreciation for a period
// @Description  Books one record per depreciable asset. Assets already booked for the period are skipped.
// @Tags         depreciation
// @Accept       json
// @Produce      json
// @Param        request body finance.RunInput true "Period (YYYY-MM)"
// @Success      200 {object} APIResponse[DepreciationRunData]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /depreciation/run [post]
func (h *DepreciationHandler) Run(c *gin.Context) {
	var input finance.RunInput
	if !h.BindJSON(c, &input) {
		return
	}
	result, err := h.depreciationService.Run(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Schedule godoc
// @ID           getDepreciationSchedule
// @Summary      Projected depreciation schedule of an asset
// @Tags         depreciation
// @Produce      json
// @Param        assetId path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[finance.ScheduleDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /depreciation/schedule/{assetId} [get]
func (h *DepreciationHandler) Schedule(c *gin.Context) {
	assetID, ok := h.ParseID(c, "assetId")
	if !ok {
		return
	}
	schedule, err := h.depreciationService.Schedule(c.Request.Context(), assetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, schedule)
}
