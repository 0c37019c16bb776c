package handler

import (
	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// DeleteWorkersRequest represents the bulk delete request body.
type DeleteWorkersRequest struct {
	IDs []uuid.UUID `json:"ids" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateWorkerRequest represents the worker patch request body. Omitted fields are unchanged.
type UpdateWorkerRequest struct {
	Identity *string `json:"identity" example:"150102199001011234"`
	Name     *string `json:"name" example:"张三"`
	Phone    *string `json:"phone" example:"13800138000"`
	Bankcard *string `json:"bankcard" example:"6222020200112233445"`
	Address  *string `json:"address" example:"内蒙古呼和浩特市新城区"`
	Salary   *int    `json:"salary" example:"4900"`
}

// SheetWorkerRequest represents one worker line of a sheet request.
type SheetWorkerRequest struct {
	ID       uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Identity string    `json:"identity" example:"150102199001011234"`
	Name     string    `json:"name" example:"张三"`
	Phone    string    `json:"phone" example:"13800138000"`
	Bankcard string    `json:"bankcard" example:"6222020200112233445"`
	Address  string    `json:"address" example:"内蒙古呼和浩特市新城区"`
	Salary   int       `json:"salary" example:"4900"`
}

// GenerateSheetRequest represents the sheet generation request body.
type GenerateSheetRequest struct {
	SalaryDate string               `json:"salary_date" example:"2024年5月"`
	Workers    []SheetWorkerRequest `json:"workers"`
}

// --- Response Types ---

// DeleteWorkersResponse reports how many workers were removed.
type DeleteWorkersResponse struct {
	Deleted int `json:"deleted" example:"2"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
