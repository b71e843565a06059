package handler

import "github.com/sellaids/backend/internal/interfaces/http/dto"

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// MessageResponse carries a confirmation message
// @Description Confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// HealthResponse reports service and database health
// @Description Health check result
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}
