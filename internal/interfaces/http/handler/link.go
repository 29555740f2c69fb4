package handler

import (
	"errors"
	"net/http"

	"github.com/assetops/backend/internal/application/link"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ShortURLHandler handles short URLs and their QR codes
type ShortURLHandler struct {
	BaseHandler
	shortURLService *link.ShortURLService
	qrService       *link.QRService
}

// NewShortURLHandler creates a new ShortURLHandler
func NewShortURLHandler(shortURLService *link.ShortURLService, qrService *link.QRService) *ShortURLHandler {
	return &ShortURLHandler{shortURLService: shortURLService, qrService: qrService}
}

// Create godoc
// @ID           createShortURL
// @Summary      Create a short URL
// @Description  A code is generated when none is given
// @Tags         short-urls
// @Accept       json
// @Produce      json
// @Param        request body link.CreateShortURLInput true "Short URL"
// @Success      201 {object} APIResponse[link.ShortURLDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /short-urls [post]
func (h *ShortURLHandler) Create(c *gin.Context) {
	createEntity(&h.BaseHandler, c, h.shortURLService.Create)
}

// Get godoc
// @ID           getShortURL
// @Summary      Get a short URL
// @Tags         short-urls
// @Produce      json
// @Param        id path string true "Short URL ID" format(uuid)
// @Success      200 {object} APIResponse[link.ShortURLDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /short-urls/{id} [get]
func (h *ShortURLHandler) Get(c *gin.Context) {
	getEntity(&h.BaseHandler, c, h.shortURLService.Get)
}

// List godoc
// @ID           listShortURLs
// @Summary      List short URLs
// @Tags         short-urls
// @Produce      json
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search code, title or target"
// @Param        active    query bool   false "Active only"
// @Param        asset_id  query string false "Linked asset" format(uuid)
// @Success      200 {object} APIResponse[[]link.ShortURLDTO]
// @Security     BearerAuth
// @Router       /short-urls [get]
func (h *ShortURLHandler) List(c *gin.Context) {
	listEntities(&h.BaseHandler, c, h.shortURLService.List)
}

// Update godoc
// @ID           updateShortURL
// @Summary      Update a short URL
// @Tags         short-urls
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Short URL ID" format(uuid)
// @Param        request body link.UpdateShortURLInput true "Short URL"
// @Success      200 {object} APIResponse[link.ShortURLDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /short-urls/{id} [put]
func (h *ShortURLHandler) Update(c *gin.Context) {
	updateEntity(&h.BaseHandler, c, h.shortURLService.Update)
}

// Delete godoc
// @ID           deleteShortURL
// @Summary      Delete a short URL
// @Tags         short-urls
// @Produce      json
// @Param        id path string true "Short URL ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /short-urls/{id} [delete]
func (h *ShortURLHandler) Delete(c *gin.Context) {
	deleteEntity(&h.BaseHandler, c, h.shortURLService.Delete)
}

// QR godoc
// @ID           getShortURLQR
// @Summary      QR code of a short URL
// @Description  Returns the PNG, or a presigned download URL when object storage is enabled
// @Tags         short-urls
// @Produce      png
// @Produce      json
// @Param        id   path  string true  "Short URL ID" format(uuid)
// @Param        size query int    false "Edge length in pixels (64-1024)" default(256)
// @Success      200 {object} APIResponse[link.QRResult] "Stored image"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /short-urls/{id}/qr [get]
func (h *ShortURLHandler) QR(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	size, err := queryInt(c, "size", 0)
	if err != nil {
		h.BadRequest(c, "size must be an integer")
		return
	}
	result, err := h.qrService.ForShortURL(c.Request.Context(), id, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writeQR(c, http.StatusOK, result)
}

// Generate godoc
// @ID           generateQR
// @Summary      Generate a QR code
// @Description  Encodes free text or the public URL of a short URL
// @Tags         qr-codes
// @Accept       json
// @Produce      png
// @Produce      json
// @Param        request body link.QRInput true "Content"
// @Success      200 {file}   binary
// @Success      201 {object} APIResponse[link.QRResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /qr-codes [post]
func (h *ShortURLHandler) Generate(c *gin.Context) {
	var input link.QRInput
	if !h.BindJSON(c, &input) {
		return
	}
	result, err := h.qrService.Generate(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writeQR(c, http.StatusCreated, result)
}

// writeQR sends a stored code as an envelope and an inline one as the PNG
func (h *ShortURLHandler) writeQR(c *gin.Context, storedStatus int, result *link.QRResult) {
	if result.Stored() {
		c.JSON(storedStatus, dto.NewSuccessResponse(result))
		return
	}
	c.Data(http.StatusOK, result.ContentType, result.PNG)
}

// RedirectHandler serves the public short-link redirect
type RedirectHandler struct {
	BaseHandler
	shortURLService *link.ShortURLService
}

// NewRedirectHandler creates a new RedirectHandler
func NewRedirectHandler(shortURLService *link.ShortURLService) *RedirectHandler {
	return &RedirectHandler{shortURLService: shortURLService}
}

// Resolve godoc
// @ID           resolveShortLink
// @Summary      Follow a short link
// @Description  Redirects to the target. Unknown codes are 404, inactive or expired links 410.
// @Tags         public
// @Param        code path string true "Short code"
// @Success      302
// @Failure      404 {object} ErrorResponse
// @Failure      410 {object} ErrorResponse
// @Router       /s/{code} [get]
func (h *RedirectHandler) Resolve(c *gin.Context) {
	target, err := h.shortURLService.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		metrics.LinkResolutions.WithLabelValues(resolutionResult(err)).Inc()
		h.HandleError(c, err)
		return
	}
	metrics.LinkResolutions.WithLabelValues(metrics.ResultRedirect).Inc()
	c.Redirect(http.StatusFound, target)
}

func resolutionResult(err error) string {
	switch {
	case errors.Is(err, shared.ErrGone):
		return metrics.ResultGone
	case shared.IsNotFound(err):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
