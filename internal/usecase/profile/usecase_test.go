package profile_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "athlete-app/internal/domain/profile"
	repo "athlete-app/internal/repository/interfaces"
	profileuc "athlete-app/internal/usecase/profile"
)

// ==== Fake repository ====

type fakeProfileRepo struct {
	profile     *domain.AthleteProfile
	getErr      error
	upsertErr   error
	lastUserID  uuid.UUID
	lastChanges map[string]any
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.AthleteProfile, error) {
	r.lastUserID = userID
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, userID uuid.UUID, changes map[string]any) (*domain.AthleteProfile, error) {
	r.lastUserID = userID
	r.lastChanges = changes
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	return r.profile, nil
}

func newService(r *fakeProfileRepo) profileuc.Service {
	return profileuc.NewService(r, time.Second, time.Second)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ==== Get ====

func TestGet_ReturnsProfile(t *testing.T) {
	userID := uuid.New()
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 7, UserID: userID}}
	svc := newService(r)

	p, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, userID, r.lastUserID)
}

func TestGet_NotFound(t *testing.T) {
	r := &fakeProfileRepo{getErr: repo.ErrNotFound}
	svc := newService(r)

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, profileuc.ErrProfileNotFound)
}

func TestGet_DeadlineMapsToTimeout(t *testing.T) {
	r := &fakeProfileRepo{getErr: context.DeadlineExceeded}
	svc := newService(r)

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, profileuc.ErrTimeout)
}

// ==== Upsert ====

func TestUpsert_OnlyPresentFieldsChange(t *testing.T) {
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 1}}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		FullName: strPtr("Ivan Orlov"),
		Bio:      strPtr("boxer"),
	})

	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"full_name": "Ivan Orlov",
		"bio":       "boxer",
	}, r.lastChanges)
}

func TestUpsert_NormalizesGenderToWireForm(t *testing.T) {
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 1}}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		Gender: strPtr("prefer-not-to-say"),
	})

	require.NoError(t, err)
	require.Equal(t, "prefer_not_to_say", r.lastChanges["gender"])
}

func TestUpsert_NormalizesCommunicationChannel(t *testing.T) {
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 1}}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		PreferredCommunication: strPtr("app"),
	})
	require.NoError(t, err)
	require.Equal(t, "app", r.lastChanges["preferred_communication"])

	_, err = svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		PreferredCommunication: strPtr("email"),
	})
	require.NoError(t, err)
	require.Equal(t, "email", r.lastChanges["preferred_communication"])
}

func TestUpsert_JSONBFieldsSerialized(t *testing.T) {
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 1}}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		OtherSports: []string{"Tennis", "Golf"},
		SocialLinks: map[string]string{"instagram": "@ivan"},
	})
	require.NoError(t, err)

	var sports []string
	require.NoError(t, json.Unmarshal(r.lastChanges["other_sports"].([]byte), &sports))
	require.Equal(t, []string{"Tennis", "Golf"}, sports)

	var links map[string]string
	require.NoError(t, json.Unmarshal(r.lastChanges["social_links"].([]byte), &links))
	require.Equal(t, map[string]string{"instagram": "@ivan"}, links)
}

func TestUpsert_EmptyOtherSportsStillWritten(t *testing.T) {
	r := &fakeProfileRepo{profile: &domain.AthleteProfile{ID: 1}}
	svc := newService(r)

	// Пустой массив — валидное значение: пользователь очистил список.
	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		OtherSports: []string{},
	})
	require.NoError(t, err)
	require.Contains(t, r.lastChanges, "other_sports")
}

func TestUpsert_InvalidFields_ValidationError(t *testing.T) {
	r := &fakeProfileRepo{}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		FullName: strPtr("X"),
		Email:    strPtr("bad"),
	})

	var vErr *profileuc.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 2)

	// Репозиторий не вызывается при ошибке валидации.
	require.Nil(t, r.lastChanges)
}

func TestUpsert_ConsentFalseRejected(t *testing.T) {
	svc := newService(&fakeProfileRepo{})

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		PrivacyConsent: boolPtr(false),
	})

	var vErr *profileuc.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "privacyConsent", vErr.Fields[0].Field)
}

func TestUpsert_DuplicateData(t *testing.T) {
	r := &fakeProfileRepo{upsertErr: repo.ErrDuplicateData}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		Email: strPtr("ivan@example.com"),
	})
	require.ErrorIs(t, err, profileuc.ErrDuplicateData)
}

func TestUpsert_DeadlineMapsToTimeout(t *testing.T) {
	r := &fakeProfileRepo{upsertErr: context.DeadlineExceeded}
	svc := newService(r)

	_, err := svc.Upsert(context.Background(), uuid.New(), profileuc.UpdateInput{
		Bio: strPtr("boxer"),
	})
	require.ErrorIs(t, err, profileuc.ErrTimeout)
}
