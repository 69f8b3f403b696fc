package interfaces

import (
	"context"

	"github.com/google/uuid"

	domain "athlete-app/internal/domain/profile"
)

// ProfileRepository определяет контракт для работы с профилями атлетов на уровне хранилища.
//
// Интерфейс оперирует доменной моделью AthleteProfile и не раскрывает деталей
// реализации (GORM, SQL и т.п.).
type ProfileRepository interface {
	// GetByUserID возвращает профиль атлета по идентификатору пользователя.
	// Возвращает (nil, ErrNotFound), если профиль ещё не создан.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AthleteProfile, error)

	// Upsert создаёт профиль пользователя или частично обновляет существующий:
	// затрагиваются только поля, присутствующие в changes (ключи в snake_case).
	// Возвращает итоговое состояние профиля после записи.
	// Возвращает ErrDuplicateData при нарушении уникального ограничения.
	Upsert(ctx context.Context, userID uuid.UUID, changes map[string]any) (*domain.AthleteProfile, error)
}
