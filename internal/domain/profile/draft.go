package profile

import "time"

// Location — вложенное местоположение атлета в черновике.
// При отправке на сервер оно разворачивается в плоские поля city/country.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Draft представляет накапливаемый, частично заполненный черновик профиля.
//
// Все поля опциональны на уровне типа: черновик всегда частичный, а
// обязательность подмножества полей проверяется схемой соответствующего шага
// перед переходом вперёд. Пол хранится в UI-форме ("prefer-not-to-say"),
// нормализация в wire-форму выполняется пайплайном отправки.
type Draft struct {
	// Персональная информация
	FullName        *string    `json:"fullName,omitempty"`
	AthleticName    *string    `json:"athleticName,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty"`
	Location        *Location  `json:"location,omitempty"`
	Email           *string    `json:"email,omitempty"`

	// Спортивная идентичность
	PrimarySport *string  `json:"primarySport,omitempty"`
	OtherSports  []string `json:"otherSports,omitempty"`
	Bio          *string  `json:"bio,omitempty"`

	// Социальные сети и связь
	SocialLinks            map[string]string `json:"socialLinks,omitempty"`
	Website                *string           `json:"website,omitempty"`
	PreferredCommunication *string           `json:"preferredCommunication,omitempty"`

	// Цели и предпочтения
	ShortTermGoals      *string `json:"shortTermGoals,omitempty"`
	LongTermAspirations *string `json:"longTermAspirations,omitempty"`
	OpenToTeams         *bool   `json:"openToTeams,omitempty"`
	PrivacyConsent      *bool   `json:"privacyConsent,omitempty"`
}

// Merge выполняет неглубокое слияние patch в черновик: непустые (ненулевые)
// поля patch замещают соответствующие поля черновика целиком. Валидация здесь
// не выполняется — это ответственность шага до вызова слияния.
func (d *Draft) Merge(patch Draft) {
	if patch.FullName != nil {
		d.FullName = patch.FullName
	}
	if patch.AthleticName != nil {
		d.AthleticName = patch.AthleticName
	}
	if patch.DateOfBirth != nil {
		d.DateOfBirth = patch.DateOfBirth
	}
	if patch.Gender != nil {
		d.Gender = patch.Gender
	}
	if patch.ProfilePhotoURL != nil {
		d.ProfilePhotoURL = patch.ProfilePhotoURL
	}
	if patch.Location != nil {
		loc := *patch.Location
		d.Location = &loc
	}
	if patch.Email != nil {
		d.Email = patch.Email
	}
	if patch.PrimarySport != nil {
		d.SetPrimarySport(*patch.PrimarySport)
	}
	if patch.OtherSports != nil {
		d.OtherSports = append([]string(nil), patch.OtherSports...)
		d.dedupePrimaryFromOthers()
	}
	if patch.Bio != nil {
		d.Bio = patch.Bio
	}
	if patch.SocialLinks != nil {
		links := make(map[string]string, len(patch.SocialLinks))
		for k, v := range patch.SocialLinks {
			links[k] = v
		}
		d.SocialLinks = links
	}
	if patch.Website != nil {
		d.Website = patch.Website
	}
	if patch.PreferredCommunication != nil {
		d.PreferredCommunication = patch.PreferredCommunication
	}
	if patch.ShortTermGoals != nil {
		d.ShortTermGoals = patch.ShortTermGoals
	}
	if patch.LongTermAspirations != nil {
		d.LongTermAspirations = patch.LongTermAspirations
	}
	if patch.OpenToTeams != nil {
		d.OpenToTeams = patch.OpenToTeams
	}
	if patch.PrivacyConsent != nil {
		d.PrivacyConsent = patch.PrivacyConsent
	}
}

// SetPrimarySport устанавливает основной вид спорта и убирает его из набора
// дополнительных, если он там присутствовал. Операция идемпотентна.
func (d *Draft) SetPrimarySport(sport string) {
	d.PrimarySport = &sport
	d.dedupePrimaryFromOthers()
}

func (d *Draft) dedupePrimaryFromOthers() {
	if d.PrimarySport == nil || len(d.OtherSports) == 0 {
		return
	}
	filtered := d.OtherSports[:0]
	for _, s := range d.OtherSports {
		if s != *d.PrimarySport {
			filtered = append(filtered, s)
		}
	}
	d.OtherSports = filtered
}

// Clone возвращает глубокую копию черновика. Используется пайплайном отправки,
// который работает с read-only снимком состояния.
func (d *Draft) Clone() Draft {
	out := *d
	if d.Location != nil {
		loc := *d.Location
		out.Location = &loc
	}
	if d.OtherSports != nil {
		out.OtherSports = append([]string(nil), d.OtherSports...)
	}
	if d.SocialLinks != nil {
		links := make(map[string]string, len(d.SocialLinks))
		for k, v := range d.SocialLinks {
			links[k] = v
		}
		out.SocialLinks = links
	}
	return out
}
