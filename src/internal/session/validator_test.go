package session

import (
	"context"
	"testing"
	"time"

	"sentra-identity-svc/src/internal/models"
	"sentra-identity-svc/src/internal/token"
	"sentra-identity-svc/src/internal/user"
)

const (
	testSessionID = "2b1f8c1e-5d7a-4f3b-9c2d-8e4a6b1c0d9f"
	testUserID    = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testTenantID  = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	testToken     = "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1MSJ9.c2ln"
)

type fakeVerifier struct {
	claims *token.Claims
	err    error
}

func (f *fakeVerifier) Verify(string) (*token.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

type fakeSessionRepo struct {
	sessions      map[string]*models.Session
	activityBumps []time.Time
	updateErr     error
}

func newFakeSessionRepo(sessions ...*models.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: map[string]*models.Session{}}
	for _, s := range sessions {
		repo.sessions[s.SessionID] = s
	}
	return repo
}

func (f *fakeSessionRepo) GetByID(_ context.Context, sessionID, tenantID string) (*models.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.TenantID != tenantID {
		return nil, models.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) UpdateActivity(_ context.Context, sessionID string, at time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if s, ok := f.sessions[sessionID]; ok && at.After(s.LastActivityAt) {
		s.LastActivityAt = at
	}
	f.activityBumps = append(f.activityBumps, at)
	return nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *models.Session) error {
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeSessionRepo) ListActiveByUser(_ context.Context, userID, tenantID string, now time.Time) ([]*models.Session, error) {
	var result []*models.Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.TenantID == tenantID && s.Status == models.SessionActive && !s.IsExpired(now) {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email, tenantID string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.TenantID == tenantID {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID, tenantID string) (*user.User, error) {
	u, ok := f.users[userID]
	if !ok || u.TenantID != tenantID {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func testClaims() *token.Claims {
	return &token.Claims{
		UserID:    testUserID,
		SessionID: testSessionID,
		TenantID:  testTenantID,
		TokenType: "access",
	}
}

func testSession(now time.Time) *models.Session {
	return &models.Session{
		SessionID:      testSessionID,
		UserID:         testUserID,
		TenantID:       testTenantID,
		Status:         models.SessionActive,
		CreatedAt:      now.Add(-time.Hour),
		LastActivityAt: now.Add(-time.Minute),
		ExpiresAt:      now.Add(time.Hour),
	}
}

func newTestValidator(verifier token.Verifier, sessions Repository, users user.Repository, now time.Time) *Validator {
	v := NewValidator(verifier, sessions, users)
	v.nowFn = func() time.Time { return now }
	return v
}

func TestValidateSuccess(t *testing.T) {
	now := time.Now()
	repo := newFakeSessionRepo(testSession(now))
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, repo, &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected valid result, got reason %s", result.Reason)
	}
	if len(repo.activityBumps) != 1 {
		t.Fatalf("expected one activity bump, got %d", len(repo.activityBumps))
	}
}

func TestValidateExpiredOverridesStoredStatus(t *testing.T) {
	now := time.Now()
	sess := testSession(now)
	sess.Status = models.SessionActive
	sess.ExpiresAt = now.Add(-time.Minute)
	repo := newFakeSessionRepo(sess)
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, repo, &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Fatal("expected invalid result for expired session")
	}
	if !result.SessionExpired {
		t.Fatal("expected sessionExpired flag")
	}
	if len(repo.activityBumps) != 0 {
		t.Fatal("expired session must not be mutated")
	}
}

func TestValidateRevokedSession(t *testing.T) {
	now := time.Now()
	sess := testSession(now)
	sess.Status = models.SessionRevoked
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(sess), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.SessionExpired || result.RequiresReauth {
		t.Fatalf("expected plain invalid result, got %+v", result)
	}
	if result.Reason != ReasonSessionRevoked {
		t.Fatalf("unexpected reason: %s", result.Reason)
	}
}

func TestValidateSuspendedSession(t *testing.T) {
	now := time.Now()
	sess := testSession(now)
	sess.Status = models.SessionSuspended
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(sess), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Reason != ReasonSessionInactive {
		t.Fatalf("expected inactive rejection, got %+v", result)
	}
}

func TestValidateSessionNotFound(t *testing.T) {
	now := time.Now()
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || !result.RequiresReauth {
		t.Fatalf("expected reauth rejection, got %+v", result)
	}
}

func TestValidateInvalidCredential(t *testing.T) {
	now := time.Now()
	repo := newFakeSessionRepo(testSession(now))
	v := newTestValidator(&fakeVerifier{err: token.ErrTokenInvalid}, repo, &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || !result.RequiresReauth || result.Reason != ReasonInvalidCredential {
		t.Fatalf("expected credential rejection, got %+v", result)
	}
	if len(repo.activityBumps) != 0 {
		t.Fatal("rejected request must not bump activity")
	}
}

func TestValidateSubjectMismatch(t *testing.T) {
	now := time.Now()
	claims := testClaims()
	claims.UserID = "e4eaaaf2-d142-11e1-b3e4-080027620cdd"
	repo := newFakeSessionRepo(testSession(now))
	v := newTestValidator(&fakeVerifier{claims: claims}, repo, &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || !result.RequiresReauth || result.Reason != ReasonSubjectMismatch {
		t.Fatalf("expected subject mismatch rejection, got %+v", result)
	}
	if len(repo.activityBumps) != 0 {
		t.Fatal("mismatched credential must not bump activity")
	}
}

func TestValidateTenantMismatch(t *testing.T) {
	now := time.Now()
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(testSession(now)), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   "0a1b2c3d-0000-4000-8000-000000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Reason != ReasonTenantMismatch {
		t.Fatalf("expected tenant mismatch rejection, got %+v", result)
	}
}

func TestValidateMalformedSessionID(t *testing.T) {
	now := time.Now()
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  "short",
		Credential: testToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Reason != ReasonMalformedInput {
		t.Fatalf("expected malformed input rejection, got %+v", result)
	}
}

func TestValidateLongAlphanumericSessionID(t *testing.T) {
	now := time.Now()
	longID := "f3a9c27d81b64e05a2d47c9b13f8e60a"
	sess := testSession(now)
	sess.SessionID = longID
	claims := testClaims()
	claims.SessionID = longID
	v := newTestValidator(&fakeVerifier{claims: claims}, newFakeSessionRepo(sess), &fakeUserRepo{}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:  longID,
		Credential: testToken,
		TenantID:   testTenantID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected 32-char alphanumeric session id to be accepted, got %+v", result)
	}
}

func TestValidateIncludeUserInfoUserMissing(t *testing.T) {
	now := time.Now()
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(testSession(now)), &fakeUserRepo{users: map[string]*user.User{}}, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:       testSessionID,
		Credential:      testToken,
		TenantID:        testTenantID,
		IncludeUserInfo: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || !result.RequiresReauth || result.Reason != ReasonUserNotFound {
		t.Fatalf("expected user-not-found rejection, got %+v", result)
	}
}

func TestValidateIncludesProjections(t *testing.T) {
	now := time.Now()
	users := &fakeUserRepo{users: map[string]*user.User{
		testUserID: {
			UserID:   testUserID,
			TenantID: testTenantID,
			Email:    "jo@example.com",
			Status:   user.StatusActive,
		},
	}}
	v := newTestValidator(&fakeVerifier{claims: testClaims()}, newFakeSessionRepo(testSession(now)), users, now)

	result, err := v.Validate(context.Background(), ValidateRequest{
		SessionID:             testSessionID,
		Credential:            testToken,
		TenantID:              testTenantID,
		IncludeUserInfo:       true,
		IncludeSessionDetails: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if result.User == nil || result.User.Email != "jo@example.com" {
		t.Fatalf("expected user projection, got %+v", result.User)
	}
	if result.Session == nil || result.Session.SessionID != testSessionID {
		t.Fatalf("expected session projection, got %+v", result.Session)
	}
	if !result.Session.LastActivityAt.Equal(now) {
		t.Fatal("expected projection to carry the bumped activity time")
	}
}

func TestValidateIdempotentAndMonotonic(t *testing.T) {
	start := time.Now()
	repo := newFakeSessionRepo(testSession(start))
	v := NewValidator(&fakeVerifier{claims: testClaims()}, repo, &fakeUserRepo{})

	current := start
	v.nowFn = func() time.Time { return current }

	req := ValidateRequest{
		SessionID:  testSessionID,
		Credential: testToken,
		TenantID:   testTenantID,
	}

	first, err := v.Validate(context.Background(), req)
	if err != nil || !first.IsValid {
		t.Fatalf("first validation failed: %v %+v", err, first)
	}
	afterFirst := repo.sessions[testSessionID].LastActivityAt

	current = start.Add(time.Second)
	second, err := v.Validate(context.Background(), req)
	if err != nil || !second.IsValid {
		t.Fatalf("second validation failed: %v %+v", err, second)
	}
	afterSecond := repo.sessions[testSessionID].LastActivityAt

	if afterSecond.Before(afterFirst) {
		t.Fatal("last activity must never move backward")
	}
}
