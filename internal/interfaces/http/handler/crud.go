package handler

import (
	"context"

	"github.com/assetops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The functions below run the common shapes of an entity route against an
// application service method.

func createEntity[I, T any](h *BaseHandler, c *gin.Context, create func(context.Context, I) (*T, error)) {
	var input I
	if !h.BindJSON(c, &input) {
		return
	}
	out, err := create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

func getEntity[T any](h *BaseHandler, c *gin.Context, get func(context.Context, uuid.UUID) (*T, error)) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	out, err := get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func listEntities[T any](h *BaseHandler, c *gin.Context, list func(context.Context, shared.Filter) (*shared.Paginated[T], error)) {
	filter, ok := h.ListFilter(c)
	if !ok {
		return
	}
	page, err := list(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(h, c, page)
}

func updateEntity[I, T any](h *BaseHandler, c *gin.Context, update func(context.Context, uuid.UUID, I) (*T, error)) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var input I
	if !h.BindJSON(c, &input) {
		return
	}
	out, err := update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func deleteEntity(h *BaseHandler, c *gin.Context, remove func(context.Context, uuid.UUID) error) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c)
}

// runAction runs a bodiless state change such as activate or approve
func runAction[T any](h *BaseHandler, c *gin.Context, action func(context.Context, uuid.UUID) (*T, error)) {
	getEntity(h, c, action)
}

// runActionWithBody runs a state change that takes an optional body
func runActionWithBody[I, T any](h *BaseHandler, c *gin.Context, action func(context.Context, uuid.UUID, I) (*T, error)) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var input I
	if !h.BindOptionalJSON(c, &input) {
		return
	}
	out, err := action(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func writePage[T any](h *BaseHandler, c *gin.Context, page *shared.Paginated[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}
