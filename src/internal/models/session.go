package models

import "time"

// Session status constants
const (
	SessionActive    = "active"
	SessionExpired   = "expired"
	SessionRevoked   = "revoked"
	SessionSuspended = "suspended"
)

type Session struct {
	SessionID      string     `json:"sessionId" bson:"session_id"`
	UserID         string     `json:"userId" bson:"user_id"`
	TenantID       string     `json:"tenantId" bson:"tenant_id"`
	Status         string     `json:"status" bson:"status"`
	DeviceInfo     string     `json:"deviceInfo,omitempty" bson:"device_info,omitempty"`
	LocationInfo   string     `json:"locationInfo,omitempty" bson:"location_info,omitempty"`
	IPAddress      string     `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent      string     `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" bson:"created_at"`
	LastActivityAt time.Time  `json:"lastActivityAt" bson:"last_activity_at"`
	ExpiresAt      time.Time  `json:"expiresAt" bson:"expires_at"`
	RevokedAt      *time.Time `json:"revokedAt,omitempty" bson:"revoked_at,omitempty"`
	Version        int64      `json:"version" bson:"version"`
}

// IsExpired reports whether the session is past its expiry, regardless of
// the stored status field.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// EffectiveStatus returns the stored status overridden by computed expiry.
func (s *Session) EffectiveStatus(now time.Time) string {
	if s.IsExpired(now) {
		return SessionExpired
	}
	return s.Status
}

// SessionDetails is the outward projection of a session, without the
// concurrency bookkeeping fields.
type SessionDetails struct {
	SessionID      string    `json:"sessionId"`
	UserID         string    `json:"userId"`
	TenantID       string    `json:"tenantId"`
	Status         string    `json:"status"`
	DeviceInfo     string    `json:"deviceInfo,omitempty"`
	LocationInfo   string    `json:"locationInfo,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// ToDetails converts the session to its outward projection.
func (s *Session) ToDetails(now time.Time) *SessionDetails {
	return &SessionDetails{
		SessionID:      s.SessionID,
		UserID:         s.UserID,
		TenantID:       s.TenantID,
		Status:         s.EffectiveStatus(now),
		DeviceInfo:     s.DeviceInfo,
		LocationInfo:   s.LocationInfo,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		ExpiresAt:      s.ExpiresAt,
	}
}
