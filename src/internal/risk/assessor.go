package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/attempt"
	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/models"
	"sentra-identity-svc/src/internal/session"
	"sentra-identity-svc/src/internal/user"
	"sentra-identity-svc/src/internal/validation"
)

// Assessment is the full output of one risk evaluation. Findings and
// recommendations are produced fresh per call and never persisted.
type Assessment struct {
	UserID          string                `json:"userId"`
	TenantID        string                `json:"tenantId"`
	RiskLevel       models.RiskLevel      `json:"riskLevel"`
	Risks           []models.SecurityRisk `json:"risks"`
	Metrics         models.RiskMetrics    `json:"metrics"`
	Recommendations []string              `json:"recommendations,omitempty"`
	AssessedAt      time.Time             `json:"assessedAt"`
}

// Assessor converts recent login-attempt and session history into a risk
// level and a set of concrete findings.
type Assessor struct {
	attempts attempt.Repository
	sessions session.Repository
	users    user.Repository
	policy   *config.SecurityPolicy
	nowFn    func() time.Time
}

func NewAssessor(attempts attempt.Repository, sessions session.Repository, users user.Repository, policy *config.SecurityPolicy) *Assessor {
	return &Assessor{
		attempts: attempts,
		sessions: sessions,
		users:    users,
		policy:   policy,
		nowFn:    time.Now,
	}
}

// Assess resolves the user and evaluates their recent history. The tenant
// id is a precondition here, not a user-facing outcome: callers are
// internal flows and a missing tenant is a caller bug.
func (a *Assessor) Assess(ctx context.Context, userID, tenantID string) (*Assessment, error) {
	if err := checkTenant(tenantID); err != nil {
		return nil, err
	}

	u, err := a.users.GetByID(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}

	return a.AssessUser(ctx, u)
}

// AssessUser evaluates an already-resolved user aggregate.
func (a *Assessor) AssessUser(ctx context.Context, u *user.User) (*Assessment, error) {
	now := a.nowFn()
	windowStart := now.AddDate(0, 0, -a.policy.AssessmentWindowDays)

	attempts, err := a.attempts.FindByUser(ctx, u.UserID, u.TenantID, models.AttemptFilter{
		CreatedAfter: &windowStart,
		Limit:        int64(a.policy.MaxAttemptsPerAssessment),
	})
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, att := range attempts {
		if att.Status == models.AttemptFailed {
			failed++
		}
	}

	activeSessions, err := a.sessions.ListActiveByUser(ctx, u.UserID, u.TenantID, now)
	if err != nil {
		return nil, err
	}

	total := len(attempts)
	metrics := models.RiskMetrics{
		TotalLoginAttempts:    total,
		FailedAttempts:        failed,
		ActiveSessions:        len(activeSessions),
		AverageAttemptsPerDay: float64(total) / float64(a.policy.AssessmentWindowDays),
	}
	if total > 0 {
		metrics.SuccessRate = float64(total-failed) / float64(total)
	}

	risks := a.collectRisks(u, metrics, now)
	level := a.determineRiskLevel(risks, failed)

	assessment := &Assessment{
		UserID:          u.UserID,
		TenantID:        u.TenantID,
		RiskLevel:       level,
		Risks:           risks,
		Metrics:         metrics,
		Recommendations: a.recommendations(u, metrics),
		AssessedAt:      now,
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         u.UserID,
		"tenant_id":       u.TenantID,
		"risk_level":      level,
		"findings":        len(risks),
		"failed_attempts": failed,
		"active_sessions": len(activeSessions),
	}).Debug("Risk assessment completed")

	return assessment, nil
}

// collectRisks evaluates every rule independently; findings are not
// mutually exclusive.
func (a *Assessor) collectRisks(u *user.User, metrics models.RiskMetrics, now time.Time) []models.SecurityRisk {
	risks := []models.SecurityRisk{}

	if metrics.FailedAttempts >= a.policy.FailedAttemptsHigh {
		risks = append(risks, models.SecurityRisk{
			Level:          models.RiskHigh,
			Type:           models.RiskMultipleFailedAttempts,
			Description:    fmt.Sprintf("%d failed login attempts in the last %d days", metrics.FailedAttempts, a.policy.AssessmentWindowDays),
			Recommendation: "Review recent login activity and consider a password change",
			Timestamp:      now,
		})
	}

	if metrics.ActiveSessions > a.policy.ActiveSessionsMedium {
		risks = append(risks, models.SecurityRisk{
			Level:          models.RiskMedium,
			Type:           models.RiskMultipleActiveSessions,
			Description:    fmt.Sprintf("%d sessions are currently active", metrics.ActiveSessions),
			Recommendation: "Revoke sessions on devices you do not recognize",
			Timestamp:      now,
		})
	}

	if u.IsLocked() {
		risks = append(risks, models.SecurityRisk{
			Level:          models.RiskCritical,
			Type:           models.RiskAccountLocked,
			Description:    "The account is locked by security policy",
			Recommendation: "Contact an administrator to review and unlock the account",
			Timestamp:      now,
		})
	}

	return risks
}

// determineRiskLevel rolls findings up to a single level. Evaluated
// top-down, first match wins.
func (a *Assessor) determineRiskLevel(risks []models.SecurityRisk, failedAttempts int) models.RiskLevel {
	var high, medium int
	for _, r := range risks {
		switch r.Level {
		case models.RiskCritical:
			return models.RiskCritical
		case models.RiskHigh:
			high++
		case models.RiskMedium:
			medium++
		}
	}

	if high > 0 || medium > a.policy.MediumFindingsForHigh {
		return models.RiskHigh
	}
	if medium > 0 || failedAttempts > a.policy.FailedAttemptsMedium {
		return models.RiskMedium
	}
	return models.RiskLow
}

// recommendations is advisory text only and never gates access. It is
// deliberately independent of the roll-up so a Low-risk account without a
// second factor still gets nudged.
func (a *Assessor) recommendations(u *user.User, metrics models.RiskMetrics) []string {
	var recs []string
	if !u.HasTwoFactorEnabled() {
		recs = append(recs, "Enable two-factor authentication")
	}
	if metrics.FailedAttempts > 0 {
		recs = append(recs, "Review recent login history")
	}
	return recs
}

func checkTenant(tenantID string) error {
	if tenantID == "" {
		return models.ErrTenantRequired
	}
	if !validation.IsUUID(tenantID) {
		return models.ErrTenantInvalid
	}
	return nil
}
