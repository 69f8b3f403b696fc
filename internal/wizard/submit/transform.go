// Package submit реализует пайплайн отправки профиля: преобразование
// черновика в wire-формат, вызов upsert, контрольное чтение и классификацию
// сбоев с ограниченным протоколом повторов.
package submit

import (
	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard/api"
)

// NormalizeGender переводит UI-форму пола в wire-форму:
// "prefer-not-to-say" -> "prefer_not_to_say"; уже нормализованные значения
// проходят без изменений.
func NormalizeGender(gender string) string {
	if gender == profile.GenderUIPreferNotToSay {
		return string(profile.GenderPreferNotToSay)
	}
	return gender
}

// DisplayGender — обратная нормализация для отображения:
// "prefer_not_to_say" -> "prefer-not-to-say"; остальные значения без изменений.
func DisplayGender(gender string) string {
	if gender == string(profile.GenderPreferNotToSay) {
		return profile.GenderUIPreferNotToSay
	}
	return gender
}

// NormalizeCommunication приводит канал связи ровно к одному из двух wire
// значений: всё, кроме "email", считается внутренним каналом приложения.
func NormalizeCommunication(channel string) string {
	if channel == string(profile.CommunicationEmail) {
		return string(profile.CommunicationEmail)
	}
	return string(profile.CommunicationApp)
}

// BuildPayload преобразует снимок черновика в wire-формат запроса upsert:
// вложенное местоположение разворачивается в плоские city/country, пол
// нормализуется в wire-форму, otherSports приводится к массиву (пустому при
// отсутствии), socialLinks передаются без изменений.
func BuildPayload(d profile.Draft) api.UpsertPayload {
	p := api.UpsertPayload{
		DateOfBirth:    d.DateOfBirth,
		OtherSports:    []string{},
		SocialLinks:    d.SocialLinks,
		OpenToTeams:    d.OpenToTeams,
		PrivacyConsent: d.PrivacyConsent,
	}

	if d.FullName != nil {
		p.FullName = *d.FullName
	}
	if d.AthleticName != nil {
		p.AthleticName = *d.AthleticName
	}
	if d.Gender != nil {
		p.Gender = NormalizeGender(*d.Gender)
	}
	if d.ProfilePhotoURL != nil {
		p.ProfilePhotoURL = *d.ProfilePhotoURL
	}
	if d.Location != nil {
		p.City = d.Location.City
		p.Country = d.Location.Country
	}
	if d.Email != nil {
		p.Email = *d.Email
	}
	if d.PrimarySport != nil {
		p.PrimarySport = *d.PrimarySport
	}
	if len(d.OtherSports) > 0 {
		p.OtherSports = append([]string(nil), d.OtherSports...)
	}
	if d.Bio != nil {
		p.Bio = *d.Bio
	}
	if d.Website != nil {
		p.Website = *d.Website
	}
	if d.PreferredCommunication != nil {
		p.PreferredCommunication = NormalizeCommunication(*d.PreferredCommunication)
	}
	if d.ShortTermGoals != nil {
		p.ShortTermGoals = *d.ShortTermGoals
	}
	if d.LongTermAspirations != nil {
		p.LongTermAspirations = *d.LongTermAspirations
	}

	return p
}
