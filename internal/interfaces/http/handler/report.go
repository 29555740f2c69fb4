package handler

import (
	"fmt"
	"net/http"

	"github.com/assetops/backend/internal/application/report"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReportTemplateHandler handles report templates and rendering
type ReportTemplateHandler struct {
	BaseHandler
	templateService *report.TemplateService
}

// NewReportTemplateHandler creates a new ReportTemplateHandler
func NewReportTemplateHandler(templateService *report.TemplateService) *ReportTemplateHandler {
	return &ReportTemplateHandler{templateService: templateService}
}

// Create godoc
// @ID           createReportTemplate
// @Summary      Create a report template
// @Tags         report-templates
// @Accept       json
// @Produce      json
// @Param        request body report.CreateTemplateInput true "Template"
// @Success      201 {object} APIResponse[report.TemplateDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /report-templates [post]
func (h *ReportTemplateHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.templateService.Create)
}

// Get godoc
// @ID           getReportTemplate
// @Summary      Get a report template
// @Tags         report-templates
// @Produce      json
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} APIResponse[report.TemplateDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /report-templates/{id} [get]
func (h *ReportTemplateHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.templateService.Get)
}

// List godoc
// @ID           listReportTemplates
// @Summary      List report templates
// @Tags         report-templates
// @Produce      json
// @Param        page           query int    false "Page" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Param        search         query string false "Search code or name"
// @Param        entity         query string false "assets, leases, depreciation or budgets"
// @Param        default_format query string false "html, pdf or csv"
// @Success      200 {object} APIResponse[[]report.TemplateDTO]
// @Security     BearerAuth
// @Router       /report-templates [get]
func (h *ReportTemplateHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.templateService.List)
}

// Update godoc
// @ID           updateReportTemplate
// @Summary      Update a report template
// @Tags         report-templates
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Template ID" format(uuid)
// @Param        request body report.UpdateTemplateInput true "Template"
// @Success      200 {object} APIResponse[report.TemplateDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /report-templates/{id} [put]
func (h *ReportTemplateHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.templateService.Update)
}

// Delete godoc
// @ID           deleteReportTemplate
// @Summary      Delete a report template
// @Tags         report-templates
// @Produce      json
// @Param        id path string true "Template ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /report-templates/{id} [delete]
func (h *ReportTemplateHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.templateService.Delete)
}

// Render godoc
// @ID           renderReport
// @Summary      Render a report
// @Description  Renders the template over its entity's rows. Stored exports return a presigned URL, otherwise the document is the response body.
// @Tags         report-templates
// @Accept       json
// @Produce      html
// @Produce      json
// @Param        id      path string             true  "Template ID" format(uuid)
// @Param        request body report.RenderInput false "Format and filter"
// @Success      200 {object} APIResponse[report.RenderResult] "Stored export"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /report-templates/{id}/render [post]
func (h *ReportTemplateHandler) Render(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var input report.RenderInput
	if !h.BindOptionalJSON(c, &input) {
		return
	}
	result, err := h.templateService.Render(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.URL != "" {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
		return
	}

	disposition := "attachment"
	if result.Format == "html" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
