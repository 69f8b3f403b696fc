package profile

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"athlete-app/internal/handler/middleware"
	"athlete-app/internal/handler/response"
	profileuc "athlete-app/internal/usecase/profile"
)

// Handler обрабатывает HTTP-запросы профиля атлета текущего пользователя.
type Handler struct {
	profiles profileuc.Service
}

// NewHandler создаёт новый ProfileHandler.
func NewHandler(profiles profileuc.Service) *Handler {
	return &Handler{profiles: profiles}
}

// currentUserID извлекает идентификатор пользователя, установленный middleware.Auth.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(middleware.ContextUserIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Get возвращает профиль атлета текущего пользователя.
//
//	@Summary		Профиль текущего пользователя
//	@Tags			profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=ProfileResponse}
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		504	{object}	response.Envelope
//	@Router			/api/profile/me [get]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required", nil)
		return
	}

	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, profileuc.ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, response.CodeProfileNotFound, "Profile not found", nil)
		case errors.Is(err, profileuc.ErrTimeout):
			log.Printf("timeout in profile Get: user_id=%s err=%v", userID, err)
			response.Error(c, http.StatusGatewayTimeout, response.CodeDatabaseTimeout, "Database operation timed out", nil)
		default:
			log.Printf("internal error in profile Get: user_id=%s err=%v", userID, err)
			response.Error(c, http.StatusServiceUnavailable, response.CodeDatabaseError, "Database error", nil)
		}
		return
	}

	response.OK(c, http.StatusOK, toResponse(p))
}

// Upsert создаёт или частично обновляет профиль атлета текущего пользователя.
//
//	@Summary		Создание или частичное обновление профиля
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		UpsertRequest	true	"Изменяемые поля профиля"
//	@Success		200		{object}	response.Envelope{data=ProfileResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		503		{object}	response.Envelope
//	@Failure		504		{object}	response.Envelope
//	@Router			/api/profile/me [patch]
func (h *Handler) Upsert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required", nil)
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Invalid request body", err.Error())
		return
	}

	p, err := h.profiles.Upsert(c.Request.Context(), userID, req.toInput())
	if err != nil {
		var vErr *profileuc.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Profile validation failed", vErr.Fields)
		case errors.Is(err, profileuc.ErrDuplicateData):
			response.Error(c, http.StatusConflict, response.CodeDuplicateData, "Profile data conflicts with an existing record", nil)
		case errors.Is(err, profileuc.ErrTimeout):
			log.Printf("timeout in profile Upsert: user_id=%s err=%v", userID, err)
			response.Error(c, http.StatusGatewayTimeout, response.CodeDatabaseTimeout, "Database operation timed out", nil)
		default:
			log.Printf("internal error in profile Upsert: user_id=%s err=%v", userID, err)
			response.Error(c, http.StatusServiceUnavailable, response.CodeDatabaseError, "Database error", nil)
		}
		return
	}

	response.OK(c, http.StatusOK, toResponse(p))
}
