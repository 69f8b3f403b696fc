package user

import (
	"time"

	"github.com/google/uuid"
)

// User представляет доменную модель пользователя приложения.
//
// Важно: эта модель описывает бизнес‑сущность и не зависит от деталей транспорта (HTTP, gRPC)
// и конкретного представления в БД.
type User struct {
	ID           uuid.UUID // Уникальный идентификатор пользователя
	Email        string    // Email (уникальный логин)
	PasswordHash string    // Хэш пароля
	Username     string    // Никнейм (уникальный)

	CreatedAt time.Time  // Время создания
	UpdatedAt time.Time  // Время последнего обновления
	DeletedAt *time.Time // Для мягкого удаления (nil, если активен)
}

// NewUser — фабрика для создания нового пользователя на доменном уровне.
// Предполагается, что валидация/нормализация входных данных и хеширование пароля
// выполняются на уровне usecase‑слоя до вызова этой функции.
func NewUser(
	email string,
	passwordHash string,
	username string,
) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Username:     username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsDeleted возвращает true, если пользователь мягко удалён.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// MarkDeleted помечает пользователя как удалённого и обновляет время обновления.
func (u *User) MarkDeleted(at time.Time) {
	u.DeletedAt = &at
	u.UpdatedAt = at
}

// Touch обновляет время последнего изменения сущности.
func (u *User) Touch(at time.Time) {
	u.UpdatedAt = at
}
