package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "athlete-app/internal/domain/user"
	"athlete-app/internal/handler/response"
	repo "athlete-app/internal/repository/interfaces"
	authuc "athlete-app/internal/usecase/auth"
)

// Handler обрабатывает HTTP-запросы, связанные с аутентификацией.
type Handler struct {
	auth authuc.Service
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(auth authuc.Service) *Handler {
	return &Handler{auth: auth}
}

// Register обрабатывает регистрацию пользователя.
//
//	@Summary		Регистрация пользователя
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Данные регистрации"
//	@Success		201		{object}	response.Envelope{data=LoginResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Router			/api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailExists):
			log.Printf("email conflict in Register: email=%s err=%v", req.Email, err)
			response.Error(c, http.StatusConflict, response.CodeDuplicateData, "Email is already in use", nil)
		case errors.Is(err, repo.ErrUsernameExists):
			log.Printf("username conflict in Register: username=%s err=%v", req.Username, err)
			response.Error(c, http.StatusConflict, response.CodeDuplicateData, "Username is already taken", nil)
		case errors.Is(err, authuc.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Password is too weak", nil)
		default:
			log.Printf("internal error in Register: email=%s username=%s err=%v", req.Email, req.Username, err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		}
		return
	}

	response.OK(c, http.StatusCreated, loginResponse(user, access, refresh))
}

// Login обрабатывает вход пользователя по email/паролю.
//
//	@Summary		Вход по email и паролю
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Учётные данные"
//	@Success		200		{object}	response.Envelope{data=LoginResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Router			/api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			// Не раскрываем, что именно неверно
			response.Error(c, http.StatusUnauthorized, response.CodeAuthError, "Invalid email or password", nil)
			return
		}
		log.Printf("internal error in Login: email=%s err=%v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		return
	}

	response.OK(c, http.StatusOK, loginResponse(user, access, refresh))
}

// Refresh обрабатывает обновление пары токенов по refresh-токену.
//
//	@Summary		Обновление пары токенов
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	true	"Refresh-токен"
//	@Success		200		{object}	response.Envelope{data=LoginResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Router			/api/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, response.CodeAuthError, "Invalid refresh token", nil)
			return
		}
		log.Printf("internal error in Refresh: err=%v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		return
	}

	response.OK(c, http.StatusOK, loginResponse(user, access, refresh))
}

// loginResponse собирает единый ответ аутентификации.
func loginResponse(user *domain.User, access, refresh string) LoginResponse {
	return LoginResponse{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}
}
