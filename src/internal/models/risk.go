package models

import "time"

// RiskLevel summarizes login security posture.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Risk finding type constants
const (
	RiskMultipleFailedAttempts = "multiple_failed_attempts"
	RiskMultipleActiveSessions = "multiple_active_sessions"
	RiskAccountLocked          = "account_locked"
)

// SecurityRisk is a single finding produced fresh per assessment.
type SecurityRisk struct {
	Level          RiskLevel `json:"level"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

// RiskMetrics are the aggregate numbers behind an assessment.
type RiskMetrics struct {
	TotalLoginAttempts    int     `json:"totalLoginAttempts"`
	FailedAttempts        int     `json:"failedAttempts"`
	ActiveSessions        int     `json:"activeSessions"`
	SuccessRate           float64 `json:"successRate"`
	AverageAttemptsPerDay float64 `json:"averageAttemptsPerDay"`
}

// SecurityVerdict is the composed output of a login security check.
type SecurityVerdict struct {
	RiskLevel       RiskLevel      `json:"riskLevel"`
	Risks           []SecurityRisk `json:"risks"`
	IsAccountLocked bool           `json:"isAccountLocked"`
	LockReason      string         `json:"lockReason,omitempty"`
}
