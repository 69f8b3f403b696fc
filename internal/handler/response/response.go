package response

import "github.com/gin-gonic/gin"

// Коды ошибок API. Клиент мастера опирается на них при классификации сбоев.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAuthError       = "AUTH_ERROR"
	CodeProfileNotFound = "PROFILE_NOT_FOUND"
	CodeDuplicateData   = "DUPLICATE_DATA"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeDatabaseTimeout = "DATABASE_TIMEOUT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Envelope — единый формат ответа API: success-флаг плюс либо data, либо error.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
	Details    any    `json:"details,omitempty"`
}

// OK отправляет успешный JSON-ответ в едином формате.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
	})
}

// Error отправляет JSON-ответ с ошибкой в едином формате.
func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Message:    message,
			Code:       code,
			StatusCode: status,
			Details:    details,
		},
	})
}
