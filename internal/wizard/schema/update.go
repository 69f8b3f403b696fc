package schema

import (
	"time"

	"athlete-app/internal/domain/profile"
)

// updateForm — серверная схема частичного обновления профиля: все поля
// опциональны, но каждое присутствующее поле обязано удовлетворять тем же
// ограничениям, что и в пошаговых схемах мастера. Пол здесь принимается в
// обеих формах, так как клиенты могут присылать как UI-, так и wire-значение.
type updateForm struct {
	FullName        string    `validate:"omitempty,min=2,max=50,letters_spaces"`
	AthleticName    string    `validate:"omitempty,max=30"`
	DateOfBirth     time.Time `validate:"omitempty,min_age"`
	Gender          string    `validate:"omitempty,oneof=male female other prefer-not-to-say prefer_not_to_say"`
	ProfilePhotoURL string    `validate:"-"`
	City            string    `validate:"omitempty,min=2,max=50"`
	Country         string    `validate:"omitempty,min=2,max=50"`
	Email           string    `validate:"omitempty,email,min=5,max=100"`

	PrimarySport string   `validate:"omitempty,sport"`
	OtherSports  []string `validate:"omitempty,max=5,dive,sport"`
	Bio          string   `validate:"omitempty,max=500"`

	Instagram string `validate:"omitempty,handle"`
	Twitter   string `validate:"omitempty,handle"`
	YouTube   string `validate:"omitempty,url_shape"`
	TikTok    string `validate:"omitempty,handle"`
	Twitch    string `validate:"omitempty,handle"`
	Website   string `validate:"omitempty,url_shape"`

	PreferredCommunication string `validate:"omitempty,oneof=email app"`

	ShortTermGoals      string `validate:"omitempty,max=300"`
	LongTermAspirations string `validate:"omitempty,max=500"`
}

var updateNames = map[string]string{
	"FullName":               "fullName",
	"AthleticName":           "athleticName",
	"DateOfBirth":            "dateOfBirth",
	"Gender":                 "gender",
	"City":                   "city",
	"Country":                "country",
	"Email":                  "email",
	"PrimarySport":           "primarySport",
	"OtherSports":            "otherSports",
	"Bio":                    "bio",
	"Instagram":              "socialLinks.instagram",
	"Twitter":                "socialLinks.twitter",
	"YouTube":                "socialLinks.youtube",
	"TikTok":                 "socialLinks.tiktok",
	"Twitch":                 "socialLinks.twitch",
	"Website":                "website",
	"PreferredCommunication": "preferredCommunication",
	"ShortTermGoals":         "shortTermGoals",
	"LongTermAspirations":    "longTermAspirations",
}

var updateMessages = map[string]string{
	"FullName.min":            "Full name must be at least 2 characters",
	"FullName.max":            "Full name must be less than 50 characters",
	"FullName.letters_spaces": "Full name can only contain letters and spaces",
	"AthleticName.max":        "Athletic name must be less than 30 characters",
	"DateOfBirth.min_age":     "You must be at least 13 years old",
	"Gender.oneof":            "Invalid gender value",
	"City.min":                "City must be at least 2 characters",
	"City.max":                "City name is too long",
	"Country.min":             "Country must be at least 2 characters",
	"Country.max":             "Country name is too long",
	"Email.email":             "Please enter a valid email address",
	"Email.min":               "Email is too short",
	"Email.max":               "Email is too long",

	"PrimarySport.sport": "Primary sport must be selected from the sports list",
	"OtherSports.max":    "You can select up to 5 additional sports",
	"OtherSports.sport":  "Additional sports must be selected from the sports list",
	"Bio.max":            "Bio must be less than 500 characters",

	"Instagram.handle":  "Invalid Instagram username format",
	"Twitter.handle":    "Invalid Twitter username format",
	"YouTube.url_shape": "Please enter a valid YouTube URL",
	"TikTok.handle":     "Invalid TikTok username format",
	"Twitch.handle":     "Invalid Twitch username format",
	"Website.url_shape": "Please enter a valid website URL",

	"PreferredCommunication.oneof": "Invalid communication channel",

	"ShortTermGoals.max":      "Short-term goals must be less than 300 characters",
	"LongTermAspirations.max": "Long-term aspirations must be less than 500 characters",
}

// UpdateInput — плоское (wire) представление частичного обновления профиля,
// каким его принимает серверный эндпоинт upsert.
type UpdateInput struct {
	FullName        string
	AthleticName    string
	DateOfBirth     time.Time
	Gender          string
	ProfilePhotoURL string
	City            string
	Country         string
	Email           string

	PrimarySport string
	OtherSports  []string
	Bio          string

	SocialLinks map[string]string
	Website     string

	PreferredCommunication string

	ShortTermGoals      string
	LongTermAspirations string
	PrivacyConsent      *bool
}

// ValidateUpdate валидирует присутствующие поля частичного обновления.
// Согласие с политикой конфиденциальности, если передано, обязано быть true.
func ValidateUpdate(in UpdateInput) []FieldError {
	form := updateForm{
		FullName:               in.FullName,
		AthleticName:           in.AthleticName,
		DateOfBirth:            in.DateOfBirth,
		Gender:                 in.Gender,
		City:                   in.City,
		Country:                in.Country,
		Email:                  in.Email,
		PrimarySport:           in.PrimarySport,
		OtherSports:            in.OtherSports,
		Bio:                    in.Bio,
		Website:                in.Website,
		PreferredCommunication: in.PreferredCommunication,
		ShortTermGoals:         in.ShortTermGoals,
		LongTermAspirations:    in.LongTermAspirations,
	}
	if in.SocialLinks != nil {
		form.Instagram = in.SocialLinks["instagram"]
		form.Twitter = in.SocialLinks["twitter"]
		form.YouTube = in.SocialLinks["youtube"]
		form.TikTok = in.SocialLinks["tiktok"]
		form.Twitch = in.SocialLinks["twitch"]
	}

	errs := collect(validate.Struct(form), updateNames, updateMessages)

	for platform := range in.SocialLinks {
		if !profile.IsKnownPlatform(platform) {
			errs = append(errs, FieldError{
				Field:   "socialLinks." + platform,
				Message: "Unsupported social platform",
				Code:    CodeInvalid,
			})
		}
	}

	if in.PrivacyConsent != nil && !*in.PrivacyConsent {
		errs = append(errs, FieldError{
			Field:   "privacyConsent",
			Message: "You must agree to the privacy policy to continue",
			Code:    CodeInvalid,
		})
	}

	return errs
}
