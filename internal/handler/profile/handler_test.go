package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"athlete-app/internal/config"
	domainprofile "athlete-app/internal/domain/profile"
	domainuser "athlete-app/internal/domain/user"
	profilehandler "athlete-app/internal/handler/profile"
	"athlete-app/internal/handler/middleware"
	profileuc "athlete-app/internal/usecase/profile"
	"athlete-app/internal/wizard/schema"
	jwtsvc "athlete-app/pkg/jwt"
)

// ==== Fake profile service ====

type fakeProfileService struct {
	profile    *domainprofile.AthleteProfile
	getErr     error
	upsertErr  error
	lastUserID uuid.UUID
	lastInput  profileuc.UpdateInput
}

func (s *fakeProfileService) Get(_ context.Context, userID uuid.UUID) (*domainprofile.AthleteProfile, error) {
	s.lastUserID = userID
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *fakeProfileService) Upsert(_ context.Context, userID uuid.UUID, in profileuc.UpdateInput) (*domainprofile.AthleteProfile, error) {
	s.lastUserID = userID
	s.lastInput = in
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return s.profile, nil
}

// ==== Test router ====

func testJWT() jwtsvc.Service {
	return jwtsvc.NewService(&config.JWTConfig{
		Issuer:        "athlete-app-test",
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
}

func newRouter(svc profileuc.Service, jwt jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := profilehandler.NewHandler(svc)
	me := r.Group("/api/profile", middleware.Auth(jwt))
	me.GET("/me", h.Get)
	me.PATCH("/me", h.Upsert)
	return r
}

func accessTokenFor(t *testing.T, jwt jwtsvc.Service, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(&domainuser.User{
		ID:       userID,
		Email:    "ivan@example.com",
		Username: "ivan",
	})
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message    string          `json:"message"`
		Code       string          `json:"code"`
		StatusCode int             `json:"statusCode"`
		Details    json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func sampleProfile(userID uuid.UUID) *domainprofile.AthleteProfile {
	return &domainprofile.AthleteProfile{
		ID:                     7,
		UserID:                 userID,
		FullName:               "Ivan Orlov",
		DateOfBirth:            time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC),
		Gender:                 domainprofile.GenderMale,
		ProfilePhotoURL:        "/uploads/ivan.jpg",
		City:                   "Moscow",
		Country:                "Russia",
		Email:                  "ivan@example.com",
		PrimarySport:           "Boxing",
		PreferredCommunication: domainprofile.CommunicationEmail,
		OpenToTeams:            true,
		PrivacyConsent:         true,
	}
}

// ==== Authentication ====

func TestProfileGet_NoToken_Unauthorized(t *testing.T) {
	r := newRouter(&fakeProfileService{}, testJWT())

	w := doRequest(r, http.MethodGet, "/api/profile/me", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestProfileGet_GarbageToken_Unauthorized(t *testing.T) {
	r := newRouter(&fakeProfileService{}, testJWT())

	w := doRequest(r, http.MethodGet, "/api/profile/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// ==== Get ====

func TestProfileGet_ReturnsEnvelope(t *testing.T) {
	userID := uuid.New()
	jwt := testJWT()
	svc := &fakeProfileService{profile: sampleProfile(userID)}
	r := newRouter(svc, jwt)

	w := doRequest(r, http.MethodGet, "/api/profile/me", accessTokenFor(t, jwt, userID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.Nil(t, env.Error)
	require.Equal(t, userID, svc.lastUserID)

	var resp profilehandler.ProfileResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Equal(t, int64(7), resp.ID)
	require.Equal(t, "Ivan Orlov", resp.FullName)
	require.Equal(t, "male", resp.Gender)
	// otherSports всегда массив, даже пустой.
	require.NotNil(t, resp.OtherSports)
}

func TestProfileGet_NotFound(t *testing.T) {
	jwt := testJWT()
	svc := &fakeProfileService{getErr: profileuc.ErrProfileNotFound}
	r := newRouter(svc, jwt)

	w := doRequest(r, http.MethodGet, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "PROFILE_NOT_FOUND", env.Error.Code)
}

func TestProfileGet_Timeout_GatewayTimeout(t *testing.T) {
	jwt := testJWT()
	svc := &fakeProfileService{getErr: profileuc.ErrTimeout}
	r := newRouter(svc, jwt)

	w := doRequest(r, http.MethodGet, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), nil)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "DATABASE_TIMEOUT", env.Error.Code)
}

// ==== Upsert ====

func TestProfileUpsert_PassesOnlyPresentFields(t *testing.T) {
	userID := uuid.New()
	jwt := testJWT()
	svc := &fakeProfileService{profile: sampleProfile(userID)}
	r := newRouter(svc, jwt)

	body := []byte(`{"fullName":"Ivan Orlov","bio":"boxer"}`)
	w := doRequest(r, http.MethodPatch, "/api/profile/me", accessTokenFor(t, jwt, userID), body)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastInput.FullName)
	require.Equal(t, "Ivan Orlov", *svc.lastInput.FullName)
	require.NotNil(t, svc.lastInput.Bio)

	// Непереданные поля остаются nil.
	require.Nil(t, svc.lastInput.Email)
	require.Nil(t, svc.lastInput.OtherSports)
	require.Nil(t, svc.lastInput.OpenToTeams)
}

func TestProfileUpsert_ValidationErrorWithDetails(t *testing.T) {
	jwt := testJWT()
	svc := &fakeProfileService{upsertErr: &profileuc.ValidationError{
		Fields: []schema.FieldError{{Field: "email", Message: "Please enter a valid email address", Code: "INVALID"}},
	}}
	r := newRouter(svc, jwt)

	body := []byte(`{"email":"bad"}`)
	w := doRequest(r, http.MethodPatch, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	var details []schema.FieldError
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	require.Len(t, details, 1)
	require.Equal(t, "email", details[0].Field)
}

func TestProfileUpsert_MalformedJSON(t *testing.T) {
	jwt := testJWT()
	r := newRouter(&fakeProfileService{}, jwt)

	w := doRequest(r, http.MethodPatch, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), []byte("{not json"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestProfileUpsert_DuplicateData_Conflict(t *testing.T) {
	jwt := testJWT()
	svc := &fakeProfileService{upsertErr: profileuc.ErrDuplicateData}
	r := newRouter(svc, jwt)

	body := []byte(`{"email":"taken@example.com"}`)
	w := doRequest(r, http.MethodPatch, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), body)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "DUPLICATE_DATA", env.Error.Code)
}

func TestProfileUpsert_DatabaseError_ServiceUnavailable(t *testing.T) {
	jwt := testJWT()
	svc := &fakeProfileService{upsertErr: context.DeadlineExceeded}
	r := newRouter(svc, jwt)

	body := []byte(`{"bio":"boxer"}`)
	w := doRequest(r, http.MethodPatch, "/api/profile/me", accessTokenFor(t, jwt, uuid.New()), body)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decodeEnvelope(t, w)
	require.Equal(t, "DATABASE_ERROR", env.Error.Code)
}
