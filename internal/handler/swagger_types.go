package handler

// Swagger type definitions for API documentation.

// AnalyzeTextRequest represents the plain text analysis request body.
type AnalyzeTextRequest struct {
	Text     string `json:"text" example:"Telekom Deutschland GmbH\nRechnungsnummer: 1234567890\nRechnungsbetrag: 49,95 €"`
	FileName string `json:"file_name" example:"rechnung_2024_03.txt"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"rules not loaded"`
}

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
