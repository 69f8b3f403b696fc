package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "athlete-app/internal/domain/user"
	repo "athlete-app/internal/repository/interfaces"
	jwtsvc "athlete-app/pkg/jwt"
	"athlete-app/pkg/password"
)

// Service описывает usecase-слой, связанный с аутентификацией:
// регистрацию, логин и обновление токенов.
type Service interface {
	// Register регистрирует пользователя и возвращает его
	// вместе с парой access/refresh токенов.
	Register(ctx context.Context, email, password, username string) (*domain.User, string, string, error)

	// Login выполняет вход по email/паролю.
	// Возвращает пользователя и пару access/refresh токенов.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)

	// Refresh обновляет пару access/refresh токенов по действительному refresh-токену.
	Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error)
}

// Ошибки бизнес-логики usecase-слоя.
var (
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password")
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token")
	ErrWeakPassword        = fmt.Errorf("password is too weak")
)

type service struct {
	users repo.UserRepository
	jwt   jwtsvc.Service
}

// NewService создаёт новый auth usecase-сервис.
func NewService(users repo.UserRepository, jwt jwtsvc.Service) Service {
	return &service{
		users: users,
		jwt:   jwt,
	}
}

// Register регистрирует нового пользователя и сразу выдаёт пару токенов.
func (s *service) Register(ctx context.Context, email, rawPassword, username string) (*domain.User, string, string, error) {
	if email == "" || rawPassword == "" || username == "" {
		return nil, "", "", fmt.Errorf("email, password and username are required")
	}

	// Хешируем пароль на уровне usecase.
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		if err == password.ErrTooShort {
			return nil, "", "", ErrWeakPassword
		}
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(email, hashed, username)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Login выполняет вход по email/паролю.
func (s *service) Login(ctx context.Context, email, rawPassword string) (*domain.User, string, string, error) {
	if email == "" || rawPassword == "" {
		return nil, "", "", fmt.Errorf("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh обновляет пару access/refresh токенов по действительному refresh-токену.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", fmt.Errorf("refresh token is required")
	}

	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", "", ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, "", "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, "", "", ErrInvalidRefreshToken
		}
		return nil, "", "", err
	}

	// Не выдаём новые токены для мягко удалённых пользователей.
	if user.IsDeleted() {
		return nil, "", "", ErrInvalidRefreshToken
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// issueTokens генерирует пару access/refresh токенов для пользователя.
func (s *service) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refresh, _, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
