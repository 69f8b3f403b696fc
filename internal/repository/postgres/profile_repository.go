package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "athlete-app/internal/domain/profile"
	repo "athlete-app/internal/repository/interfaces"
)

// pgProfile представляет собой ORM-модель для таблицы athlete_profiles.
// Списки и связи с соцсетями хранятся как JSONB.
type pgProfile struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID string `gorm:"column:user_id;type:uuid;not null"`

	FullName        string    `gorm:"column:full_name;type:varchar(100);not null"`
	AthleticName    string    `gorm:"column:athletic_name;type:varchar(100)"`
	DateOfBirth     time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Gender          string    `gorm:"column:gender;type:text;not null"`
	ProfilePhotoURL string    `gorm:"column:profile_photo_url;type:text"`
	City            string    `gorm:"column:city;type:varchar(100)"`
	Country         string    `gorm:"column:country;type:varchar(100)"`
	Email           string    `gorm:"column:email;type:varchar(255);not null"`

	PrimarySport string          `gorm:"column:primary_sport;type:varchar(50);not null"`
	OtherSports  json.RawMessage `gorm:"column:other_sports;type:jsonb;not null"`
	Bio          string          `gorm:"column:bio;type:text"`

	SocialLinks            json.RawMessage `gorm:"column:social_links;type:jsonb;not null"`
	Website                string          `gorm:"column:website;type:text"`
	PreferredCommunication string          `gorm:"column:preferred_communication;type:text;not null"`

	ShortTermGoals      string `gorm:"column:short_term_goals;type:text"`
	LongTermAspirations string `gorm:"column:long_term_aspirations;type:text"`
	OpenToTeams         bool   `gorm:"column:open_to_teams;not null"`
	PrivacyConsent      bool   `gorm:"column:privacy_consent;not null"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (pgProfile) TableName() string {
	return "athlete_profiles"
}

// ProfileRepository реализует repo.ProfileRepository с использованием GORM и Postgres.
type ProfileRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository создает новый репозиторий профилей атлетов.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// toDomain маппит ORM-модель в доменную.
func (m *pgProfile) toDomain() (*domain.AthleteProfile, error) {
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	otherSports := []string{}
	if len(m.OtherSports) > 0 {
		if err := json.Unmarshal(m.OtherSports, &otherSports); err != nil {
			return nil, err
		}
	}

	socialLinks := map[string]string{}
	if len(m.SocialLinks) > 0 {
		if err := json.Unmarshal(m.SocialLinks, &socialLinks); err != nil {
			return nil, err
		}
	}

	return &domain.AthleteProfile{
		ID:     m.ID,
		UserID: userID,

		FullName:        m.FullName,
		AthleticName:    m.AthleticName,
		DateOfBirth:     m.DateOfBirth,
		Gender:          domain.Gender(m.Gender),
		ProfilePhotoURL: m.ProfilePhotoURL,
		City:            m.City,
		Country:         m.Country,
		Email:           m.Email,

		PrimarySport: m.PrimarySport,
		OtherSports:  otherSports,
		Bio:          m.Bio,

		SocialLinks:            socialLinks,
		Website:                m.Website,
		PreferredCommunication: domain.CommunicationChannel(m.PreferredCommunication),

		ShortTermGoals:      m.ShortTermGoals,
		LongTermAspirations: m.LongTermAspirations,
		OpenToTeams:         m.OpenToTeams,
		PrivacyConsent:      m.PrivacyConsent,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// GetByUserID возвращает профиль атлета по идентификатору пользователя.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AthleteProfile, error) {
	var model pgProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// Upsert создаёт профиль пользователя или выборочно обновляет существующий.
// Ключи changes соответствуют колонкам таблицы (snake_case); JSONB-поля
// сериализуются заранее на уровне usecase.
func (r *ProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, changes map[string]any) (*domain.AthleteProfile, error) {
	var out *domain.AthleteProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model pgProfile
		err := tx.Where("user_id = ?", userID.String()).Take(&model).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Профиля ещё нет: создаём новую запись из изменений
			now := time.Now().UTC()
			fresh := pgProfile{
				UserID:      userID.String(),
				OtherSports: json.RawMessage(`[]`),
				SocialLinks: json.RawMessage(`{}`),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
			if len(changes) > 0 {
				changes["updated_at"] = now
				if err := tx.Model(&pgProfile{}).
					Where("id = ?", fresh.ID).
					Updates(changes).Error; err != nil {
					return err
				}
			}
			model.ID = fresh.ID

		case err != nil:
			return err

		default:
			if len(changes) > 0 {
				changes["updated_at"] = time.Now().UTC()
				if err := tx.Model(&pgProfile{}).
					Where("id = ?", model.ID).
					Updates(changes).Error; err != nil {
					return err
				}
			}
		}

		// Перечитываем итоговое состояние
		var final pgProfile
		if err := tx.Where("id = ?", model.ID).Take(&final).Error; err != nil {
			return err
		}
		d, err := final.toDomain()
		if err != nil {
			return err
		}
		out = d
		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return nil, repo.ErrDuplicateData
		}
		return nil, err
	}
	return out, nil
}
