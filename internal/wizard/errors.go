package wizard

import (
	"time"

	"github.com/google/uuid"

	"athlete-app/internal/wizard/schema"
)

// MaxRetries — максимальное количество повторных попыток отправки профиля.
const MaxRetries = 3

// Машинные коды ошибок уровня отправки профиля.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeAuth               = "AUTH_ERROR"
	CodeNetwork            = "NETWORK_ERROR"
	CodeServer             = "SERVER_ERROR"
	CodeVerificationFailed = "VERIFICATION_FAILED"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// ProfileError описывает одну ошибку уровня отправки/сессии мастера.
type ProfileError struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Retryable bool      `json:"retryable"`
}

// newProfileError создаёт ошибку с уникальным идентификатором и отметкой времени.
func newProfileError(code, message, field string, retryable bool) ProfileError {
	return ProfileError{
		ID:        "error_" + uuid.NewString(),
		Code:      code,
		Message:   message,
		Field:     field,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}
}

// errorState — переходное состояние обратной связи об ошибках.
// Не сохраняется между сессиями: после перезагрузки оно всегда пустое.
type errorState struct {
	errors           []ProfileError
	validationErrors []schema.FieldError
	lastError        *ProfileError
	retryCount       int
}

func (s *errorState) reset() {
	s.errors = nil
	s.validationErrors = nil
	s.lastError = nil
	s.retryCount = 0
}
