package submit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard/submit"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ==== Enum normalization ====

func TestNormalizeGender(t *testing.T) {
	require.Equal(t, "prefer_not_to_say", submit.NormalizeGender("prefer-not-to-say"))
	require.Equal(t, "prefer_not_to_say", submit.NormalizeGender("prefer_not_to_say"))
	require.Equal(t, "male", submit.NormalizeGender("male"))
	require.Equal(t, "female", submit.NormalizeGender("female"))
}

func TestDisplayGender_RoundTrip(t *testing.T) {
	for _, g := range []string{"male", "female", "other", "prefer-not-to-say"} {
		require.Equal(t, g, submit.DisplayGender(submit.NormalizeGender(g)))
	}
}

func TestNormalizeCommunication(t *testing.T) {
	require.Equal(t, "email", submit.NormalizeCommunication("email"))
	require.Equal(t, "app", submit.NormalizeCommunication("app"))
	// Всё, кроме email, трактуется как канал приложения.
	require.Equal(t, "app", submit.NormalizeCommunication("push"))
	require.Equal(t, "app", submit.NormalizeCommunication(""))
}

// ==== Payload transformation ====

func TestBuildPayload_FlattensLocation(t *testing.T) {
	d := profile.Draft{
		Location: &profile.Location{City: "Oslo", Country: "Norway"},
	}
	p := submit.BuildPayload(d)
	require.Equal(t, "Oslo", p.City)
	require.Equal(t, "Norway", p.Country)
}

func TestBuildPayload_NormalizesEnums(t *testing.T) {
	d := profile.Draft{
		Gender:                 strPtr("prefer-not-to-say"),
		PreferredCommunication: strPtr("sms"),
	}
	p := submit.BuildPayload(d)
	require.Equal(t, "prefer_not_to_say", p.Gender)
	require.Equal(t, "app", p.PreferredCommunication)
}

func TestBuildPayload_OtherSportsAlwaysArray(t *testing.T) {
	p := submit.BuildPayload(profile.Draft{})
	require.NotNil(t, p.OtherSports)
	require.Empty(t, p.OtherSports)

	p = submit.BuildPayload(profile.Draft{OtherSports: []string{"Tennis", "Golf"}})
	require.Equal(t, []string{"Tennis", "Golf"}, p.OtherSports)
}

func TestBuildPayload_CarriesAllFields(t *testing.T) {
	dob := time.Date(1992, 8, 1, 0, 0, 0, 0, time.UTC)
	d := profile.Draft{
		FullName:        strPtr("Lena Koch"),
		AthleticName:    strPtr("LK"),
		DateOfBirth:     &dob,
		Gender:          strPtr("female"),
		ProfilePhotoURL: strPtr("/uploads/lena.jpg"),
		Location:        &profile.Location{City: "Hamburg", Country: "Germany"},
		Email:           strPtr("lena@example.com"),

		PrimarySport: strPtr("Swimming"),
		Bio:          strPtr("freestyle sprinter"),

		SocialLinks:            map[string]string{"instagram": "@lena"},
		Website:                strPtr("https://lena.example.com"),
		PreferredCommunication: strPtr("email"),

		ShortTermGoals:      strPtr("national finals"),
		LongTermAspirations: strPtr("olympics"),
		OpenToTeams:         boolPtr(true),
		PrivacyConsent:      boolPtr(true),
	}

	p := submit.BuildPayload(d)

	require.Equal(t, "Lena Koch", p.FullName)
	require.Equal(t, "LK", p.AthleticName)
	require.Equal(t, &dob, p.DateOfBirth)
	require.Equal(t, "female", p.Gender)
	require.Equal(t, "/uploads/lena.jpg", p.ProfilePhotoURL)
	require.Equal(t, "lena@example.com", p.Email)
	require.Equal(t, "Swimming", p.PrimarySport)
	require.Equal(t, "freestyle sprinter", p.Bio)
	require.Equal(t, map[string]string{"instagram": "@lena"}, p.SocialLinks)
	require.Equal(t, "https://lena.example.com", p.Website)
	require.Equal(t, "email", p.PreferredCommunication)
	require.Equal(t, "national finals", p.ShortTermGoals)
	require.Equal(t, "olympics", p.LongTermAspirations)
	require.NotNil(t, p.OpenToTeams)
	require.True(t, *p.OpenToTeams)
	require.NotNil(t, p.PrivacyConsent)
	require.True(t, *p.PrivacyConsent)
}
