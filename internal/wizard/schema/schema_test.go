package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard/schema"
)

// ==== Helpers ====

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// validPersonalInfo возвращает черновик с корректно заполненным первым шагом.
func validPersonalInfo() *profile.Draft {
	dob := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	return &profile.Draft{
		FullName:        strPtr("Anna Petrova"),
		DateOfBirth:     &dob,
		Gender:          strPtr("female"),
		ProfilePhotoURL: strPtr("/uploads/photo.jpg"),
		Location:        &profile.Location{City: "Berlin", Country: "Germany"},
		Email:           strPtr("anna@example.com"),
	}
}

func fieldCodes(errs []schema.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Code
	}
	return out
}

// ==== Personal Information ====

func TestValidatePersonalInfo_Valid(t *testing.T) {
	errs := schema.ValidateStep(0, validPersonalInfo())
	require.Empty(t, errs)
}

func TestValidatePersonalInfo_EmptyDraft_AllRequired(t *testing.T) {
	errs := schema.ValidateStep(0, &profile.Draft{})
	codes := fieldCodes(errs)

	require.Equal(t, schema.CodeRequired, codes["fullName"])
	require.Equal(t, schema.CodeRequired, codes["dateOfBirth"])
	require.Equal(t, schema.CodeRequired, codes["gender"])
	require.Equal(t, schema.CodeRequired, codes["profilePhotoUrl"])
	require.Equal(t, schema.CodeRequired, codes["location.city"])
	require.Equal(t, schema.CodeRequired, codes["location.country"])
	require.Equal(t, schema.CodeRequired, codes["email"])
}

func TestValidatePersonalInfo_NameRules(t *testing.T) {
	d := validPersonalInfo()

	d.FullName = strPtr("A")
	codes := fieldCodes(schema.ValidateStep(0, d))
	require.Equal(t, schema.CodeTooShort, codes["fullName"])

	d.FullName = strPtr("Anna123")
	codes = fieldCodes(schema.ValidateStep(0, d))
	require.Equal(t, schema.CodeInvalid, codes["fullName"])

	d.FullName = strPtr("Anna Maria Petrova")
	require.Empty(t, schema.ValidateStep(0, d))
}

func TestValidatePersonalInfo_GenderAcceptsBothForms(t *testing.T) {
	d := validPersonalInfo()

	d.Gender = strPtr("prefer-not-to-say")
	require.Empty(t, schema.ValidateStep(0, d))

	d.Gender = strPtr("prefer_not_to_say")
	require.Empty(t, schema.ValidateStep(0, d))

	d.Gender = strPtr("unknown")
	codes := fieldCodes(schema.ValidateStep(0, d))
	require.Equal(t, schema.CodeInvalid, codes["gender"])
}

func TestValidatePersonalInfo_MinAgeBoundary(t *testing.T) {
	now := time.Now()

	// Ровно 13 лет: день рождения сегодня.
	d := validPersonalInfo()
	dob := time.Date(now.Year()-13, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d.DateOfBirth = &dob
	require.Empty(t, schema.ValidateStep(0, d))

	// 13 лет исполнится только завтра.
	young := dob.AddDate(0, 0, 1)
	d.DateOfBirth = &young
	codes := fieldCodes(schema.ValidateStep(0, d))
	require.Equal(t, schema.CodeInvalid, codes["dateOfBirth"])
}

func TestValidatePersonalInfo_BadEmail(t *testing.T) {
	d := validPersonalInfo()
	d.Email = strPtr("not-an-email")
	codes := fieldCodes(schema.ValidateStep(0, d))
	require.Equal(t, schema.CodeInvalid, codes["email"])
}

// ==== Sporting Identity ====

func TestValidateSportingIdentity_Valid(t *testing.T) {
	d := &profile.Draft{
		PrimarySport: strPtr("Tennis"),
		OtherSports:  []string{"Basketball", "Swimming"},
		Bio:          strPtr("Playing since childhood."),
	}
	require.Empty(t, schema.ValidateStep(1, d))
}

func TestValidateSportingIdentity_UnknownSport(t *testing.T) {
	d := &profile.Draft{PrimarySport: strPtr("Quidditch")}
	codes := fieldCodes(schema.ValidateStep(1, d))
	require.Equal(t, schema.CodeInvalid, codes["primarySport"])
}

func TestValidateSportingIdentity_TooManyOtherSports(t *testing.T) {
	d := &profile.Draft{
		PrimarySport: strPtr("Tennis"),
		OtherSports:  []string{"Basketball", "Football", "Soccer", "Baseball", "Volleyball", "Swimming"},
	}
	codes := fieldCodes(schema.ValidateStep(1, d))
	require.Equal(t, schema.CodeTooLong, codes["otherSports"])
}

func TestValidateSportingIdentity_UnknownOtherSport(t *testing.T) {
	d := &profile.Draft{
		PrimarySport: strPtr("Tennis"),
		OtherSports:  []string{"Basketball", "Chess"},
	}
	codes := fieldCodes(schema.ValidateStep(1, d))
	require.Equal(t, schema.CodeInvalid, codes["otherSports"])
}

func TestValidateSportingIdentity_PrimaryDuplicatedInOthers(t *testing.T) {
	d := &profile.Draft{
		PrimarySport: strPtr("Tennis"),
		OtherSports:  []string{"Tennis"},
	}
	errs := schema.ValidateStep(1, d)
	require.Len(t, errs, 1)
	require.Equal(t, "otherSports", errs[0].Field)
	require.Equal(t, schema.CodeInvalid, errs[0].Code)
}

// ==== Social & Communication ====

func TestValidateSocialCommunication_Valid(t *testing.T) {
	d := &profile.Draft{
		SocialLinks: map[string]string{
			"instagram": "@anna.petrova",
			"youtube":   "https://youtube.com/c/anna",
		},
		Website:                strPtr("https://anna.example.com"),
		PreferredCommunication: strPtr("email"),
	}
	require.Empty(t, schema.ValidateStep(2, d))
}

func TestValidateSocialCommunication_BadHandle(t *testing.T) {
	d := &profile.Draft{
		SocialLinks:            map[string]string{"instagram": "bad handle!"},
		PreferredCommunication: strPtr("app"),
	}
	codes := fieldCodes(schema.ValidateStep(2, d))
	require.Equal(t, schema.CodeInvalid, codes["socialLinks.instagram"])
}

func TestValidateSocialCommunication_BadWebsite(t *testing.T) {
	d := &profile.Draft{
		Website:                strPtr("not a url"),
		PreferredCommunication: strPtr("app"),
	}
	codes := fieldCodes(schema.ValidateStep(2, d))
	require.Equal(t, schema.CodeInvalid, codes["website"])
}

func TestValidateSocialCommunication_UnknownPlatform(t *testing.T) {
	d := &profile.Draft{
		SocialLinks:            map[string]string{"myspace": "anna"},
		PreferredCommunication: strPtr("app"),
	}
	codes := fieldCodes(schema.ValidateStep(2, d))
	require.Equal(t, schema.CodeInvalid, codes["socialLinks.myspace"])
}

func TestValidateSocialCommunication_CommunicationRequired(t *testing.T) {
	codes := fieldCodes(schema.ValidateStep(2, &profile.Draft{}))
	require.Equal(t, schema.CodeRequired, codes["preferredCommunication"])
}

// ==== Goals & Preferences ====

func TestValidateGoalsPreferences_Valid(t *testing.T) {
	d := &profile.Draft{
		ShortTermGoals: strPtr("Win regionals"),
		OpenToTeams:    boolPtr(false),
		PrivacyConsent: boolPtr(true),
	}
	require.Empty(t, schema.ValidateStep(3, d))
}

func TestValidateGoalsPreferences_OpenToTeamsMustBeSet(t *testing.T) {
	d := &profile.Draft{PrivacyConsent: boolPtr(true)}
	codes := fieldCodes(schema.ValidateStep(3, d))
	require.Equal(t, schema.CodeRequired, codes["openToTeams"])
}

func TestValidateGoalsPreferences_ConsentMustBeTrue(t *testing.T) {
	d := &profile.Draft{
		OpenToTeams:    boolPtr(true),
		PrivacyConsent: boolPtr(false),
	}
	codes := fieldCodes(schema.ValidateStep(3, d))
	require.Equal(t, schema.CodeInvalid, codes["privacyConsent"])
}

// ==== StepComplete ====

func TestStepComplete_RequiresMandatorySubset(t *testing.T) {
	require.False(t, schema.StepComplete(0, &profile.Draft{}))
	require.True(t, schema.StepComplete(0, validPersonalInfo()))

	require.False(t, schema.StepComplete(1, &profile.Draft{}))
	require.True(t, schema.StepComplete(1, &profile.Draft{PrimarySport: strPtr("Tennis")}))

	require.False(t, schema.StepComplete(2, &profile.Draft{}))
	require.True(t, schema.StepComplete(2, &profile.Draft{PreferredCommunication: strPtr("app")}))

	require.False(t, schema.StepComplete(3, &profile.Draft{OpenToTeams: boolPtr(true)}))
	require.False(t, schema.StepComplete(3, &profile.Draft{
		OpenToTeams:    boolPtr(true),
		PrivacyConsent: boolPtr(false),
	}))
	require.True(t, schema.StepComplete(3, &profile.Draft{
		OpenToTeams:    boolPtr(false),
		PrivacyConsent: boolPtr(true),
	}))
}

func TestStepComplete_ReviewStepNeverComplete(t *testing.T) {
	require.False(t, schema.StepComplete(4, validPersonalInfo()))
}

// ==== ValidateUpdate ====

func TestValidateUpdate_EmptyInputIsValid(t *testing.T) {
	require.Empty(t, schema.ValidateUpdate(schema.UpdateInput{}))
}

func TestValidateUpdate_PresentFieldsChecked(t *testing.T) {
	in := schema.UpdateInput{
		FullName:     "X",
		PrimarySport: "Quidditch",
		Email:        "bad",
	}
	codes := fieldCodes(schema.ValidateUpdate(in))
	require.Equal(t, schema.CodeTooShort, codes["fullName"])
	require.Equal(t, schema.CodeInvalid, codes["primarySport"])
	require.Equal(t, schema.CodeInvalid, codes["email"])
}

func TestValidateUpdate_ConsentFalseRejected(t *testing.T) {
	consent := false
	errs := schema.ValidateUpdate(schema.UpdateInput{PrivacyConsent: &consent})
	require.Len(t, errs, 1)
	require.Equal(t, "privacyConsent", errs[0].Field)
}

func TestValidateUpdate_GenderBothForms(t *testing.T) {
	require.Empty(t, schema.ValidateUpdate(schema.UpdateInput{Gender: "prefer-not-to-say"}))
	require.Empty(t, schema.ValidateUpdate(schema.UpdateInput{Gender: "prefer_not_to_say"}))
	require.NotEmpty(t, schema.ValidateUpdate(schema.UpdateInput{Gender: "nope"}))
}
