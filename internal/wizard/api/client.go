// Package api реализует клиент HTTP API профиля атлета, используемый
// пайплайном отправки мастера и read-only страницей профиля.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"athlete-app/internal/wizard/schema"
)

// Машинные коды ошибок клиентского уровня.
const (
	CodeNonJSONResponse = "NON_JSON_RESPONSE"
	CodeJSONParseError  = "JSON_PARSE_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeUnknownError    = "UNKNOWN_ERROR"

	// Коды, приходящие с сервера.
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAuthError       = "AUTH_ERROR"
	CodeProfileNotFound = "PROFILE_NOT_FOUND"
)

// Profile — сохранённая сущность профиля в том виде, в котором её отдаёт API.
type Profile struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`

	FullName        string    `json:"fullName"`
	AthleticName    string    `json:"athleticName,omitempty"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	Gender          string    `json:"gender"`
	ProfilePhotoURL string    `json:"profilePhotoUrl"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Email           string    `json:"email"`

	PrimarySport string   `json:"primarySport"`
	OtherSports  []string `json:"otherSports"`
	Bio          string   `json:"bio,omitempty"`

	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	Website     string            `json:"website,omitempty"`

	PreferredCommunication string `json:"preferredCommunication"`

	ShortTermGoals      string `json:"shortTermGoals,omitempty"`
	LongTermAspirations string `json:"longTermAspirations,omitempty"`
	OpenToTeams         bool   `json:"openToTeams"`
	PrivacyConsent      bool   `json:"privacyConsent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertPayload — плоский wire-формат запроса upsert, который сервер ожидает
// от пайплайна отправки (город/страна на верхнем уровне, пол в wire-форме,
// otherSports — всегда массив).
type UpsertPayload struct {
	FullName        string     `json:"fullName,omitempty"`
	AthleticName    string     `json:"athleticName,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	ProfilePhotoURL string     `json:"profilePhotoUrl,omitempty"`
	City            string     `json:"city,omitempty"`
	Country         string     `json:"country,omitempty"`
	Email           string     `json:"email,omitempty"`

	PrimarySport string   `json:"primarySport,omitempty"`
	OtherSports  []string `json:"otherSports"`
	Bio          string   `json:"bio,omitempty"`

	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	Website     string            `json:"website,omitempty"`

	PreferredCommunication string `json:"preferredCommunication,omitempty"`

	ShortTermGoals      string `json:"shortTermGoals,omitempty"`
	LongTermAspirations string `json:"longTermAspirations,omitempty"`
	OpenToTeams         *bool  `json:"openToTeams,omitempty"`
	PrivacyConsent      *bool  `json:"privacyConsent,omitempty"`
}

// APIError — нормализованная ошибка клиента API: HTTP-статус, машинный код,
// сообщение и, для серверных ошибок валидации, пополевые детали.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []schema.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("profile api: %s (status=%d, code=%s)", e.Message, e.StatusCode, e.Code)
}

// IsValidationError сообщает, что сервер отклонил запрос по результатам
// валидации полей.
func (e *APIError) IsValidationError() bool {
	return e.Code == CodeValidationError
}

// IsAuthError сообщает, что запрос не прошёл аутентификацию.
func (e *APIError) IsAuthError() bool {
	return e.Code == CodeUnauthorized || e.Code == CodeAuthError || e.StatusCode == http.StatusUnauthorized
}

// IsServerError сообщает о серверной или сетевой ошибке.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 || e.Code == CodeNetworkError
}

// IsNotFound сообщает, что профиль не найден (путь чтения).
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == CodeProfileNotFound
}

// TokenSource поставляет access-токен текущей сессии. Механизм получения
// токена (провайдер аутентификации) остаётся внешним коллаборатором.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken — простейший TokenSource с фиксированным токеном.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client — HTTP-клиент API профиля.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient создаёт клиент API профиля. tokens может быть nil, если
// эндпоинты не требуют аутентификации (например, в тестах).
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// envelope — единый формат ответа API: {success, data} либо {success, error}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

type errorBody struct {
	Message    string              `json:"message"`
	Code       string              `json:"code"`
	StatusCode int                 `json:"statusCode"`
	Details    []schema.FieldError `json:"details,omitempty"`
}

// GetProfile возвращает профиль текущего пользователя.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	return c.do(ctx, http.MethodGet, "/api/profile/me", nil)
}

// UpsertProfile создаёт или обновляет профиль текущего пользователя.
func (c *Client) UpsertProfile(ctx context.Context, payload UpsertPayload) (*Profile, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{StatusCode: 500, Code: CodeUnknownError, Message: err.Error()}
	}
	return c.do(ctx, http.MethodPatch, "/api/profile/me", body)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Profile, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{StatusCode: 500, Code: CodeNetworkError, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, &APIError{StatusCode: http.StatusUnauthorized, Code: CodeAuthError, Message: err.Error()}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Сетевые/транспортные сбои нормализуются здесь и никогда не
		// достигают вызывающего кода в «сыром» виде.
		return nil, &APIError{StatusCode: 500, Code: CodeNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

// handleResponse разбирает ответ API, отдельно распознавая не-JSON ответы
// (обычно это редирект аутентификации или страница ошибки сервера).
func handleResponse(resp *http.Response) (*Profile, error) {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeNonJSONResponse,
			Message: fmt.Sprintf(
				"server returned %q instead of JSON: %s",
				contentType, strings.TrimSpace(string(raw)),
			),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeJSONParseError,
			Message:    "server returned invalid JSON response",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeUnknownError,
			Message:    "API request failed",
		}
		if env.Error != nil {
			if env.Error.Code != "" {
				apiErr.Code = env.Error.Code
			}
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
			apiErr.Details = env.Error.Details
		}
		return nil, apiErr
	}

	if !env.Success || len(env.Data) == 0 {
		return nil, &APIError{
			StatusCode: 500,
			Code:       CodeInvalidResponse,
			Message:    "invalid response format from server",
		}
	}

	var p Profile
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, &APIError{
			StatusCode: 500,
			Code:       CodeInvalidResponse,
			Message:    "invalid profile payload in response",
		}
	}
	return &p, nil
}
