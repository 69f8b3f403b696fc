package profile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athlete-app/internal/domain/profile"
)

func strPtr(s string) *string { return &s }

func mustDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMerge_OverwritesOnlyPresentFields(t *testing.T) {
	d := profile.Draft{
		FullName: strPtr("Ivan Orlov"),
		Bio:      strPtr("old bio"),
	}

	d.Merge(profile.Draft{Bio: strPtr("new bio")})

	require.Equal(t, "Ivan Orlov", *d.FullName)
	require.Equal(t, "new bio", *d.Bio)
}

func TestMerge_ReplacesCollectionsWholesale(t *testing.T) {
	d := profile.Draft{
		OtherSports: []string{"Tennis", "Golf"},
		SocialLinks: map[string]string{"instagram": "@old", "twitter": "@old"},
	}

	d.Merge(profile.Draft{
		OtherSports: []string{"Boxing"},
		SocialLinks: map[string]string{"instagram": "@new"},
	})

	require.Equal(t, []string{"Boxing"}, d.OtherSports)
	require.Equal(t, map[string]string{"instagram": "@new"}, d.SocialLinks)
}

func TestSetPrimarySport_RemovesFromOtherSports(t *testing.T) {
	d := profile.Draft{OtherSports: []string{"Tennis", "Boxing", "Golf"}}

	d.SetPrimarySport("Boxing")

	require.Equal(t, "Boxing", *d.PrimarySport)
	require.Equal(t, []string{"Tennis", "Golf"}, d.OtherSports)

	// Идемпотентно.
	d.SetPrimarySport("Boxing")
	require.Equal(t, []string{"Tennis", "Golf"}, d.OtherSports)
}

func TestMerge_PrimarySportDeduplicatesOthers(t *testing.T) {
	d := profile.Draft{OtherSports: []string{"Tennis", "Boxing"}}

	d.Merge(profile.Draft{PrimarySport: strPtr("Tennis")})

	require.Equal(t, []string{"Boxing"}, d.OtherSports)
}

func TestClone_IsDeepCopy(t *testing.T) {
	d := profile.Draft{
		Location:    &profile.Location{City: "Moscow", Country: "Russia"},
		OtherSports: []string{"Tennis"},
		SocialLinks: map[string]string{"instagram": "@ivan"},
	}

	c := d.Clone()
	c.Location.City = "Kazan"
	c.OtherSports[0] = "Golf"
	c.SocialLinks["instagram"] = "@other"

	require.Equal(t, "Moscow", d.Location.City)
	require.Equal(t, "Tennis", d.OtherSports[0])
	require.Equal(t, "@ivan", d.SocialLinks["instagram"])
}

func TestAgeAt(t *testing.T) {
	birth := mustDate(2010, 6, 15)

	require.Equal(t, 13, profile.AgeAt(birth, mustDate(2023, 6, 15)))
	require.Equal(t, 12, profile.AgeAt(birth, mustDate(2023, 6, 14)))
	require.Equal(t, 12, profile.AgeAt(birth, mustDate(2023, 5, 20)))
	require.Equal(t, 13, profile.AgeAt(birth, mustDate(2023, 7, 1)))
}
