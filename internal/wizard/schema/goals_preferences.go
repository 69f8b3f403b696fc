package schema

import "athlete-app/internal/domain/profile"

// goalsPreferencesForm — форма шага «Goals & Preferences».
// OpenToTeams — указатель: поле обязано быть явно установлено в true или false,
// «не задано» невалидно. PrivacyConsent обязан быть ровно true.
type goalsPreferencesForm struct {
	ShortTermGoals      string `validate:"omitempty,max=300"`
	LongTermAspirations string `validate:"omitempty,max=500"`
	OpenToTeams         *bool  `validate:"required"`
	PrivacyConsent      bool   `validate:"eq=true"`
}

var goalsPreferencesNames = map[string]string{
	"ShortTermGoals":      "shortTermGoals",
	"LongTermAspirations": "longTermAspirations",
	"OpenToTeams":         "openToTeams",
	"PrivacyConsent":      "privacyConsent",
}

var goalsPreferencesMessages = map[string]string{
	"ShortTermGoals.max":      "Short-term goals must be less than 300 characters",
	"LongTermAspirations.max": "Long-term aspirations must be less than 500 characters",
	"OpenToTeams.required":    "Please specify if you are open to joining teams",
	"PrivacyConsent.eq":       "You must agree to the privacy policy to continue",
}

// ValidateGoalsPreferences валидирует поля шага «Goals & Preferences».
func ValidateGoalsPreferences(d *profile.Draft) []FieldError {
	form := goalsPreferencesForm{
		ShortTermGoals:      deref(d.ShortTermGoals),
		LongTermAspirations: deref(d.LongTermAspirations),
		OpenToTeams:         d.OpenToTeams,
	}
	if d.PrivacyConsent != nil {
		form.PrivacyConsent = *d.PrivacyConsent
	}

	return collect(validate.Struct(form), goalsPreferencesNames, goalsPreferencesMessages)
}
