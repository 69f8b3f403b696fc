package schema

import "athlete-app/internal/domain/profile"

// socialCommunicationForm — форма шага «Social & Communication».
// Платформы фиксированы: instagram/twitter/tiktok/twitch принимают имена
// пользователей (с опциональным ведущим "@"), youtube — URL канала.
type socialCommunicationForm struct {
	Instagram string `validate:"omitempty,handle"`
	Twitter   string `validate:"omitempty,handle"`
	YouTube   string `validate:"omitempty,url_shape"`
	TikTok    string `validate:"omitempty,handle"`
	Twitch    string `validate:"omitempty,handle"`

	Website string `validate:"omitempty,url_shape"`

	PreferredCommunication string `validate:"required,oneof=email app"`
}

var socialCommunicationNames = map[string]string{
	"Instagram":              "socialLinks.instagram",
	"Twitter":                "socialLinks.twitter",
	"YouTube":                "socialLinks.youtube",
	"TikTok":                 "socialLinks.tiktok",
	"Twitch":                 "socialLinks.twitch",
	"Website":                "website",
	"PreferredCommunication": "preferredCommunication",
}

var socialCommunicationMessages = map[string]string{
	"Instagram.handle":  "Invalid Instagram username format",
	"Twitter.handle":    "Invalid Twitter username format",
	"YouTube.url_shape": "Please enter a valid YouTube URL",
	"TikTok.handle":     "Invalid TikTok username format",
	"Twitch.handle":     "Invalid Twitch username format",

	"Website.url_shape": "Please enter a valid website URL",

	"PreferredCommunication.required": "Please select your preferred communication method",
	"PreferredCommunication.oneof":    "Please select your preferred communication method",
}

// ValidateSocialCommunication валидирует поля шага «Social & Communication».
func ValidateSocialCommunication(d *profile.Draft) []FieldError {
	form := socialCommunicationForm{
		Website:                deref(d.Website),
		PreferredCommunication: deref(d.PreferredCommunication),
	}
	if d.SocialLinks != nil {
		form.Instagram = d.SocialLinks["instagram"]
		form.Twitter = d.SocialLinks["twitter"]
		form.YouTube = d.SocialLinks["youtube"]
		form.TikTok = d.SocialLinks["tiktok"]
		form.Twitch = d.SocialLinks["twitch"]
	}

	errs := collect(validate.Struct(form), socialCommunicationNames, socialCommunicationMessages)

	// Ключи вне фиксированного набора платформ не принимаются.
	for platform := range d.SocialLinks {
		if !profile.IsKnownPlatform(platform) {
			errs = append(errs, FieldError{
				Field:   "socialLinks." + platform,
				Message: "Unsupported social platform",
				Code:    CodeInvalid,
			})
		}
	}

	return errs
}
