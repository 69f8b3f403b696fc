package schema

import (
	"time"

	"athlete-app/internal/domain/profile"
)

// personalInfoForm — форма шага «Personal Information».
// Пол принимается как в UI-форме ("prefer-not-to-say"), так и в уже
// нормализованной wire-форме ("prefer_not_to_say").
type personalInfoForm struct {
	FullName        string    `validate:"required,min=2,max=50,letters_spaces"`
	AthleticName    string    `validate:"omitempty,max=30"`
	DateOfBirth     time.Time `validate:"required,min_age"`
	Gender          string    `validate:"required,oneof=male female other prefer-not-to-say prefer_not_to_say"`
	ProfilePhotoURL string    `validate:"required"`
	City            string    `validate:"required,min=2,max=50"`
	Country         string    `validate:"required,min=2,max=50"`
	Email           string    `validate:"required,email,min=5,max=100"`
}

var personalInfoNames = map[string]string{
	"FullName":        "fullName",
	"AthleticName":    "athleticName",
	"DateOfBirth":     "dateOfBirth",
	"Gender":          "gender",
	"ProfilePhotoURL": "profilePhotoUrl",
	"City":            "location.city",
	"Country":         "location.country",
	"Email":           "email",
}

var personalInfoMessages = map[string]string{
	"FullName.required":       "Full name is required",
	"FullName.min":            "Full name must be at least 2 characters",
	"FullName.max":            "Full name must be less than 50 characters",
	"FullName.letters_spaces": "Full name can only contain letters and spaces",

	"AthleticName.max": "Athletic name must be less than 30 characters",

	"DateOfBirth.required": "Date of birth is required",
	"DateOfBirth.min_age":  "You must be at least 13 years old to create an account",

	"Gender.required": "Please select your gender",
	"Gender.oneof":    "Please select your gender",

	"ProfilePhotoURL.required": "Profile photo is required",

	"City.required": "City is required",
	"City.min":      "City must be at least 2 characters",
	"City.max":      "City name is too long",

	"Country.required": "Country is required",
	"Country.min":      "Country must be at least 2 characters",
	"Country.max":      "Country name is too long",

	"Email.required": "Email is required",
	"Email.email":    "Please enter a valid email address",
	"Email.min":      "Email is too short",
	"Email.max":      "Email is too long",
}

// ValidatePersonalInfo валидирует поля шага «Personal Information».
func ValidatePersonalInfo(d *profile.Draft) []FieldError {
	form := personalInfoForm{
		FullName:        deref(d.FullName),
		AthleticName:    deref(d.AthleticName),
		Gender:          deref(d.Gender),
		ProfilePhotoURL: deref(d.ProfilePhotoURL),
		Email:           deref(d.Email),
	}
	if d.DateOfBirth != nil {
		form.DateOfBirth = *d.DateOfBirth
	}
	if d.Location != nil {
		form.City = d.Location.City
		form.Country = d.Location.Country
	}

	return collect(validate.Struct(form), personalInfoNames, personalInfoMessages)
}
