package risk

import (
	"context"

	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/models"
	"sentra-identity-svc/src/internal/user"
	"sentra-identity-svc/src/internal/validation"
)

// activityPublisher is the outbound audit hook. Publishing is best-effort;
// a broker outage never fails a security check.
type activityPublisher interface {
	PublishActivityWithDetails(userID, sessionID, tenantID, serviceName, action, ipAddress, userAgent string) error
}

// Orchestrator composes risk assessment output with account lock state
// into a single verdict for the login flow. It is a read-only query and
// never mutates lock state, attempt counters, or sessions.
type Orchestrator struct {
	users     user.Repository
	assessor  *Assessor
	publisher activityPublisher
}

func NewOrchestrator(users user.Repository, assessor *Assessor, publisher activityPublisher) *Orchestrator {
	return &Orchestrator{
		users:     users,
		assessor:  assessor,
		publisher: publisher,
	}
}

// CheckLoginSecurity resolves the user by email and tenant and returns
// the composed verdict. Unlike session validation, user-not-found here is
// a hard error: this query is invoked by authenticated and administrative
// flows where a missing user indicates a caller bug.
func (o *Orchestrator) CheckLoginSecurity(ctx context.Context, email, tenantID, ipAddress string) (*models.SecurityVerdict, error) {
	if err := checkTenant(tenantID); err != nil {
		return nil, err
	}
	if !validation.IsEmail(email) {
		return nil, models.ErrEmailInvalid
	}
	if ipAddress != "" && !validation.IsIPAddress(ipAddress) {
		logrus.WithField("ip_address", ipAddress).Warn("Ignoring malformed ip address on security check")
		ipAddress = ""
	}

	u, err := o.users.GetByEmail(ctx, email, tenantID)
	if err != nil {
		return nil, err
	}

	assessment, err := o.assessor.AssessUser(ctx, u)
	if err != nil {
		return nil, err
	}

	verdict := &models.SecurityVerdict{
		RiskLevel:       assessment.RiskLevel,
		Risks:           assessment.Risks,
		IsAccountLocked: u.IsLocked(),
		LockReason:      u.LockReason(),
	}

	if o.publisher != nil {
		if err := o.publisher.PublishActivityWithDetails(u.UserID, "", tenantID,
			models.ServiceSecurityCheck, models.ActionSecurityCheck, ipAddress, ""); err != nil {
			logrus.WithError(err).Warn("Failed to publish security check activity")
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    u.UserID,
		"tenant_id":  tenantID,
		"risk_level": verdict.RiskLevel,
		"locked":     verdict.IsAccountLocked,
	}).Info("Login security check completed")

	return verdict, nil
}
