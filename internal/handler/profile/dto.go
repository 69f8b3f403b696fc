package profile

import (
	"time"

	domain "athlete-app/internal/domain/profile"
	profileuc "athlete-app/internal/usecase/profile"
)

// ProfileResponse — представление профиля атлета в API.
type ProfileResponse struct {
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

// UpsertRequest описывает тело частичного обновления профиля:
// отсутствующее поле не изменяется.
type UpsertRequest struct {
	FullName        *string    `json:"fullName"`
	AthleticName    *string    `json:"athleticName"`
	DateOfBirth     *time.Time `json:"dateOfBirth"`
	Gender          *string    `json:"gender"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl"`
	City            *string    `json:"city"`
	Country         *string    `json:"country"`
	Email           *string    `json:"email"`

	PrimarySport *string  `json:"primarySport"`
	OtherSports  []string `json:"otherSports"`
	Bio          *string  `json:"bio"`

	SocialLinks map[string]string `json:"socialLinks"`
	Website     *string           `json:"website"`

	PreferredCommunication *string `json:"preferredCommunication"`

	ShortTermGoals      *string `json:"shortTermGoals"`
	LongTermAspirations *string `json:"longTermAspirations"`
	OpenToTeams         *bool   `json:"openToTeams"`
	PrivacyConsent      *bool   `json:"privacyConsent"`
}

// toInput маппит тело запроса во вход usecase-слоя.
func (r *UpsertRequest) toInput() profileuc.UpdateInput {
	return profileuc.UpdateInput{
		FullName:        r.FullName,
		AthleticName:    r.AthleticName,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		ProfilePhotoURL: r.ProfilePhotoURL,
		City:            r.City,
		Country:         r.Country,
		Email:           r.Email,

		PrimarySport: r.PrimarySport,
		OtherSports:  r.OtherSports,
		Bio:          r.Bio,

		SocialLinks: r.SocialLinks,
		Website:     r.Website,

		PreferredCommunication: r.PreferredCommunication,

		ShortTermGoals:      r.ShortTermGoals,
		LongTermAspirations: r.LongTermAspirations,
		OpenToTeams:         r.OpenToTeams,
		PrivacyConsent:      r.PrivacyConsent,
	}
}

// toResponse маппит доменную модель в представление API.
// otherSports всегда сериализуется массивом, даже пустым.
func toResponse(p *domain.AthleteProfile) ProfileResponse {
	otherSports := p.OtherSports
	if otherSports == nil {
		otherSports = []string{}
	}

	return ProfileResponse{
		ID:     p.ID,
		UserID: p.UserID.String(),

		FullName:        p.FullName,
		AthleticName:    p.AthleticName,
		DateOfBirth:     p.DateOfBirth,
		Gender:          string(p.Gender),
		ProfilePhotoURL: p.ProfilePhotoURL,
		City:            p.City,
		Country:         p.Country,
		Email:           p.Email,

		PrimarySport: p.PrimarySport,
		OtherSports:  otherSports,
		Bio:          p.Bio,

		SocialLinks: p.SocialLinks,
		Website:     p.Website,

		PreferredCommunication: string(p.PreferredCommunication),

		ShortTermGoals:      p.ShortTermGoals,
		LongTermAspirations: p.LongTermAspirations,
		OpenToTeams:         p.OpenToTeams,
		PrivacyConsent:      p.PrivacyConsent,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
