package schema

import "athlete-app/internal/domain/profile"

// sportingIdentityForm — форма шага «Sporting Identity».
type sportingIdentityForm struct {
	PrimarySport string   `validate:"required,sport"`
	OtherSports  []string `validate:"omitempty,max=5,dive,sport"`
	Bio          string   `validate:"omitempty,max=500"`
}

var sportingIdentityNames = map[string]string{
	"PrimarySport": "primarySport",
	"OtherSports":  "otherSports",
	"Bio":          "bio",
}

var sportingIdentityMessages = map[string]string{
	"PrimarySport.required": "Primary sport is required",
	"PrimarySport.sport":    "Primary sport must be selected from the sports list",

	"OtherSports.max":   "You can select up to 5 additional sports",
	"OtherSports.sport": "Additional sports must be selected from the sports list",

	"Bio.max": "Bio must be less than 500 characters",
}

// ValidateSportingIdentity валидирует поля шага «Sporting Identity».
// Помимо структурных правил проверяется, что основной вид спорта не
// продублирован в наборе дополнительных.
func ValidateSportingIdentity(d *profile.Draft) []FieldError {
	form := sportingIdentityForm{
		PrimarySport: deref(d.PrimarySport),
		OtherSports:  d.OtherSports,
		Bio:          deref(d.Bio),
	}

	errs := collect(validate.Struct(form), sportingIdentityNames, sportingIdentityMessages)

	if form.PrimarySport != "" {
		for _, s := range form.OtherSports {
			if s == form.PrimarySport {
				errs = append(errs, FieldError{
					Field:   "otherSports",
					Message: "Primary sport cannot be repeated in additional sports",
					Code:    CodeInvalid,
				})
				break
			}
		}
	}

	return errs
}
