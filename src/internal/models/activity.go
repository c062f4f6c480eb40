package models

import "time"

type ActivityMessage struct {
	UserID      string            `json:"user_id"`
	SessionID   string            `json:"session_id"`
	TenantID    string            `json:"tenant_id"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	IPAddress   string            `json:"ip_address,omitempty"`
	UserAgent   string            `json:"user_agent,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionSessionValidated = "session_validated"
	ActionSessionRejected  = "session_rejected"
	ActionSecurityCheck    = "security_check"
	ActionRiskAssessment   = "risk_assessment"
)

// Service name constants
const (
	ServiceSessionValidator = "identity.session.validator"
	ServiceAuthMiddleware   = "identity.middleware.auth"
	ServiceSecurityCheck    = "identity.security.check"
)
