package handler

import "github.com/assetops/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Msg     string         `json:"msg" example:"ok"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Msg     string         `json:"msg" example:"Asset not found"`
	Data    any            `json:"data"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a success API response without data
// @Description Success response with null data
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Msg     string `json:"msg" example:"ok"`
	Data    any    `json:"data"`
}

// CountData represents count data in response
// @Description Count data
type CountData struct {
	Count int64 `json:"count"`
}

// DepreciationRunData represents the outcome of a depreciation run
// @Description Records created and assets skipped for the period
type DepreciationRunData struct {
	Period  string `json:"period" example:"2026-03"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}
