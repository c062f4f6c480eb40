package models

import "time"

// Login attempt status constants
const (
	AttemptSuccess    = "success"
	AttemptFailed     = "failed"
	AttemptBlocked    = "blocked"
	AttemptSuspicious = "suspicious"
)

// Login attempt type constants
const (
	AttemptTypePassword     = "password"
	AttemptTypeTwoFactor    = "two_factor"
	AttemptTypeSSO          = "sso"
	AttemptTypeApiKey       = "api_key"
	AttemptTypeRegistration = "registration"
)

// LoginAttempt is an append-only record of an authentication outcome.
// Attempts are written by the login flow and never mutated afterwards.
type LoginAttempt struct {
	AttemptID     string    `json:"attemptId" bson:"attempt_id"`
	UserID        string    `json:"userId" bson:"user_id"`
	TenantID      string    `json:"tenantId" bson:"tenant_id"`
	Email         string    `json:"email" bson:"email"`
	IPAddress     string    `json:"ipAddress" bson:"ip_address"`
	Status        string    `json:"status" bson:"status"`
	Type          string    `json:"type" bson:"type"`
	DeviceInfo    string    `json:"deviceInfo,omitempty" bson:"device_info,omitempty"`
	LocationInfo  string    `json:"locationInfo,omitempty" bson:"location_info,omitempty"`
	FailureReason string    `json:"failureReason,omitempty" bson:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// AttemptFilter narrows ledger queries by status and time window.
type AttemptFilter struct {
	Status       string
	CreatedAfter *time.Time
	Limit        int64
}
