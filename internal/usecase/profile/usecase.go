package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "athlete-app/internal/domain/profile"
	repo "athlete-app/internal/repository/interfaces"
	"athlete-app/internal/wizard/schema"
)

// Service описывает usecase-слой профиля атлета: чтение и частичное
// обновление (upsert) профиля текущего пользователя.
type Service interface {
	// Get возвращает профиль атлета по идентификатору пользователя.
	// Возвращает ErrProfileNotFound, если профиль ещё не создан.
	Get(ctx context.Context, userID uuid.UUID) (*domain.AthleteProfile, error)

	// Upsert создаёт или частично обновляет профиль пользователя.
	// Затрагиваются только присутствующие (ненулевые) поля входа.
	Upsert(ctx context.Context, userID uuid.UUID, in UpdateInput) (*domain.AthleteProfile, error)
}

// Ошибки бизнес-логики usecase-слоя.
var (
	ErrProfileNotFound = fmt.Errorf("profile not found")
	ErrDuplicateData   = fmt.Errorf("duplicate profile data")
	ErrTimeout         = fmt.Errorf("database operation timed out")
)

// ValidationError агрегирует ошибки валидации полей частичного обновления.
type ValidationError struct {
	Fields []schema.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile validation failed: %d field(s)", len(e.Fields))
}

// UpdateInput — частичное обновление профиля: nil-поле означает
// «не менять». Пол принимается и в UI-, и в wire-форме.
type UpdateInput struct {
	FullName        *string
	AthleticName    *string
	DateOfBirth     *time.Time
	Gender          *string
	ProfilePhotoURL *string
	City            *string
	Country         *string
	Email           *string

	PrimarySport *string
	OtherSports  []string // nil — поле не передано
	Bio          *string

	SocialLinks map[string]string // nil — поле не передано
	Website     *string

	PreferredCommunication *string

	ShortTermGoals      *string
	LongTermAspirations *string
	OpenToTeams         *bool
	PrivacyConsent      *bool
}

type service struct {
	profiles     repo.ProfileRepository
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewService создаёт новый profile usecase-сервис.
// readTimeout ограничивает операции чтения, writeTimeout — upsert.
func NewService(profiles repo.ProfileRepository, readTimeout, writeTimeout time.Duration) Service {
	return &service{
		profiles:     profiles,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Get возвращает профиль атлета текущего пользователя.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.AthleteProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return p, nil
}

// Upsert валидирует присутствующие поля, нормализует enum-значения
// и сохраняет изменения профиля.
func (s *service) Upsert(ctx context.Context, userID uuid.UUID, in UpdateInput) (*domain.AthleteProfile, error) {
	if fields := schema.ValidateUpdate(toSchemaInput(in)); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	changes, err := buildChanges(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	p, err := s.profiles.Upsert(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateData) {
			return nil, ErrDuplicateData
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return p, nil
}

// toSchemaInput разворачивает присутствующие поля во flat-вход валидатора.
func toSchemaInput(in UpdateInput) schema.UpdateInput {
	out := schema.UpdateInput{
		OtherSports:    in.OtherSports,
		SocialLinks:    in.SocialLinks,
		PrivacyConsent: in.PrivacyConsent,
	}
	if in.FullName != nil {
		out.FullName = *in.FullName
	}
	if in.AthleticName != nil {
		out.AthleticName = *in.AthleticName
	}
	if in.DateOfBirth != nil {
		out.DateOfBirth = *in.DateOfBirth
	}
	if in.Gender != nil {
		out.Gender = *in.Gender
	}
	if in.ProfilePhotoURL != nil {
		out.ProfilePhotoURL = *in.ProfilePhotoURL
	}
	if in.City != nil {
		out.City = *in.City
	}
	if in.Country != nil {
		out.Country = *in.Country
	}
	if in.Email != nil {
		out.Email = *in.Email
	}
	if in.PrimarySport != nil {
		out.PrimarySport = *in.PrimarySport
	}
	if in.Bio != nil {
		out.Bio = *in.Bio
	}
	if in.Website != nil {
		out.Website = *in.Website
	}
	if in.PreferredCommunication != nil {
		out.PreferredCommunication = *in.PreferredCommunication
	}
	if in.ShortTermGoals != nil {
		out.ShortTermGoals = *in.ShortTermGoals
	}
	if in.LongTermAspirations != nil {
		out.LongTermAspirations = *in.LongTermAspirations
	}
	return out
}

// buildChanges собирает карту колонок для выборочного обновления.
// JSONB-поля сериализуются здесь, enum-значения приводятся к wire-форме.
func buildChanges(in UpdateInput) (map[string]any, error) {
	changes := map[string]any{}

	if in.FullName != nil {
		changes["full_name"] = *in.FullName
	}
	if in.AthleticName != nil {
		changes["athletic_name"] = *in.AthleticName
	}
	if in.DateOfBirth != nil {
		changes["date_of_birth"] = *in.DateOfBirth
	}
	if in.Gender != nil {
		changes["gender"] = string(normalizeGender(*in.Gender))
	}
	if in.ProfilePhotoURL != nil {
		changes["profile_photo_url"] = *in.ProfilePhotoURL
	}
	if in.City != nil {
		changes["city"] = *in.City
	}
	if in.Country != nil {
		changes["country"] = *in.Country
	}
	if in.Email != nil {
		changes["email"] = *in.Email
	}
	if in.PrimarySport != nil {
		changes["primary_sport"] = *in.PrimarySport
	}
	if in.OtherSports != nil {
		raw, err := json.Marshal(in.OtherSports)
		if err != nil {
			return nil, err
		}
		changes["other_sports"] = raw
	}
	if in.Bio != nil {
		changes["bio"] = *in.Bio
	}
	if in.SocialLinks != nil {
		raw, err := json.Marshal(in.SocialLinks)
		if err != nil {
			return nil, err
		}
		changes["social_links"] = raw
	}
	if in.Website != nil {
		changes["website"] = *in.Website
	}
	if in.PreferredCommunication != nil {
		// Всё, что не email, трактуем как общение внутри приложения
		ch := domain.CommunicationApp
		if *in.PreferredCommunication == string(domain.CommunicationEmail) {
			ch = domain.CommunicationEmail
		}
		changes["preferred_communication"] = string(ch)
	}
	if in.ShortTermGoals != nil {
		changes["short_term_goals"] = *in.ShortTermGoals
	}
	if in.LongTermAspirations != nil {
		changes["long_term_aspirations"] = *in.LongTermAspirations
	}
	if in.OpenToTeams != nil {
		changes["open_to_teams"] = *in.OpenToTeams
	}
	if in.PrivacyConsent != nil {
		changes["privacy_consent"] = *in.PrivacyConsent
	}

	return changes, nil
}

// normalizeGender приводит UI-форму значения пола к wire-форме.
func normalizeGender(g string) domain.Gender {
	if g == domain.GenderUIPreferNotToSay {
		return domain.GenderPreferNotToSay
	}
	return domain.Gender(g)
}
