package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/models"
	"sentra-identity-svc/src/internal/token"
	"sentra-identity-svc/src/internal/user"
	"sentra-identity-svc/src/internal/validation"
)

// Internal rejection reasons. These feed logging and telemetry only; the
// HTTP layer renders every one of them as a uniform "please sign in again".
const (
	ReasonInvalidCredential = "invalid_credential"
	ReasonMalformedInput    = "malformed_input"
	ReasonSessionNotFound   = "session_not_found"
	ReasonSessionExpired    = "session_expired"
	ReasonSessionRevoked    = "session_revoked"
	ReasonSessionInactive   = "session_inactive"
	ReasonSubjectMismatch   = "subject_mismatch"
	ReasonTenantMismatch    = "tenant_mismatch"
	ReasonUserNotFound      = "user_not_found"
)

// ValidateRequest carries one session validation call.
type ValidateRequest struct {
	SessionID             string
	Credential            string
	TenantID              string
	UserID                string
	IncludeUserInfo       bool
	IncludeSessionDetails bool
}

// ValidationResult is the typed outcome of a validation call. Every
// authentication-outcome branch lands here; errors are reserved for store
// failures.
type ValidationResult struct {
	IsValid        bool                   `json:"isValid"`
	Reason         string                 `json:"reason,omitempty"`
	RequiresReauth bool                   `json:"requiresReauth,omitempty"`
	SessionExpired bool                   `json:"sessionExpired,omitempty"`
	User           *user.Profile          `json:"user,omitempty"`
	Session        *models.SessionDetails `json:"session,omitempty"`
}

// Validator binds a credential to a session record, checks its lifecycle
// and advances last activity. It never creates or revokes sessions.
type Validator struct {
	verifier token.Verifier
	sessions Repository
	users    user.Repository
	nowFn    func() time.Time
}

func NewValidator(verifier token.Verifier, sessions Repository, users user.Repository) *Validator {
	return &Validator{
		verifier: verifier,
		sessions: sessions,
		users:    users,
		nowFn:    time.Now,
	}
}

// Validate runs the checks strictly in order: credential, lookup,
// lifecycle, binding, user resolution, activity bump. The order matters -
// checking binding before lifecycle would reveal that a session exists
// even when it is already expired.
func (v *Validator) Validate(ctx context.Context, req ValidateRequest) (*ValidationResult, error) {
	if !validation.IsSessionID(req.SessionID) {
		return rejected(ReasonMalformedInput, true, false), nil
	}

	claims, err := v.verifier.Verify(req.Credential)
	if err != nil {
		logrus.WithError(err).WithField("session_id", req.SessionID).Debug("Credential verification failed")
		return rejected(ReasonInvalidCredential, true, false), nil
	}

	tenantID := req.TenantID
	if tenantID == "" {
		tenantID = claims.TenantID
	} else if claims.TenantID != "" && claims.TenantID != tenantID {
		logrus.WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"tenant_id":  tenantID,
		}).Warn("Credential tenant does not match requested tenant")
		return rejected(ReasonTenantMismatch, true, false), nil
	}

	sess, err := v.sessions.GetByID(ctx, req.SessionID, tenantID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return rejected(ReasonSessionNotFound, true, false), nil
		}
		return nil, err
	}

	now := v.nowFn()

	// Lifecycle, in order: computed expiry first, then revocation, then
	// any other non-active status.
	if sess.IsExpired(now) {
		return rejected(ReasonSessionExpired, false, true), nil
	}
	if sess.Status == models.SessionRevoked {
		return rejected(ReasonSessionRevoked, false, false), nil
	}
	if sess.Status != models.SessionActive {
		return rejected(ReasonSessionInactive, false, false), nil
	}

	// A credential for user A must never validate user B's session.
	if claims.UserID != sess.UserID {
		logrus.WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"subject":    claims.UserID,
		}).Warn("Credential subject does not match session owner")
		return rejected(ReasonSubjectMismatch, true, false), nil
	}
	if req.UserID != "" && req.UserID != sess.UserID {
		return rejected(ReasonSubjectMismatch, true, false), nil
	}
	if claims.SessionID != "" && claims.SessionID != sess.SessionID {
		return rejected(ReasonSubjectMismatch, true, false), nil
	}

	var profile *user.Profile
	if req.IncludeUserInfo {
		u, err := v.users.GetByID(ctx, sess.UserID, tenantID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return rejected(ReasonUserNotFound, true, false), nil
			}
			return nil, err
		}
		profile = u.ToProfile()
	}

	// The only mutation, after every check has passed.
	if err := v.sessions.UpdateActivity(ctx, sess.SessionID, now); err != nil {
		return nil, err
	}
	sess.LastActivityAt = now

	result := &ValidationResult{IsValid: true}
	if req.IncludeUserInfo {
		result.User = profile
	}
	if req.IncludeSessionDetails {
		result.Session = sess.ToDetails(now)
	}

	return result, nil
}

func rejected(reason string, requiresReauth, sessionExpired bool) *ValidationResult {
	return &ValidationResult{
		IsValid:        false,
		Reason:         reason,
		RequiresReauth: requiresReauth,
		SessionExpired: sessionExpired,
	}
}
