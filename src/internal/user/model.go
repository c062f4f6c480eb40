package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID              string             `json:"userId" bson:"user_id"`
	TenantID            string             `json:"tenantId" bson:"tenant_id"`
	FirstName           string             `json:"firstName" bson:"first_name"`
	LastName            string             `json:"lastName" bson:"last_name"`
	Email               string             `json:"email" bson:"email"`
	Role                string             `json:"role" bson:"role"`
	Status              string             `json:"status" bson:"status"`
	IsEmailVerified     bool               `json:"isEmailVerified" bson:"is_email_verified"`
	TwoFactorEnabled    bool               `json:"twoFactorEnabled" bson:"two_factor_enabled"`
	Locked              bool               `json:"locked" bson:"locked"`
	LockedReason        string             `json:"lockedReason,omitempty" bson:"locked_reason,omitempty"`
	LockedAt            *time.Time         `json:"lockedAt,omitempty" bson:"locked_at,omitempty"`
	FailedLoginAttempts int                `json:"failedLoginAttempts" bson:"failed_login_attempts"`
	LastFailedLoginAt   *time.Time         `json:"lastFailedLoginAt,omitempty" bson:"last_failed_login_at,omitempty"`
	LastLoginAt         *time.Time         `json:"lastLoginAt,omitempty" bson:"last_login_at,omitempty"`
	LastActiveAt        *time.Time         `json:"lastActiveAt,omitempty" bson:"last_active_at,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updated_at"`
	DeletedAt           *time.Time         `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
}

// Status constants
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Profile is the outward projection of a user, without lock bookkeeping.
type Profile struct {
	UserID          string     `json:"userId"`
	TenantID        string     `json:"tenantId"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	LastActiveAt    *time.Time `json:"lastActiveAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ToProfile converts a User to its outward projection.
func (u *User) ToProfile() *Profile {
	return &Profile{
		UserID:          u.UserID,
		TenantID:        u.TenantID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            u.Role,
		Status:          u.Status,
		IsEmailVerified: u.IsEmailVerified,
		LastLoginAt:     u.LastLoginAt,
		LastActiveAt:    u.LastActiveAt,
		CreatedAt:       u.CreatedAt,
	}
}

// IsLocked reports whether the account is blocked by lockout policy.
func (u *User) IsLocked() bool {
	return u.Locked
}

// LockReason returns the lockout reason, empty when not locked.
func (u *User) LockReason() string {
	if !u.Locked {
		return ""
	}
	return u.LockedReason
}

// HasTwoFactorEnabled reports whether any second factor is enrolled.
func (u *User) HasTwoFactorEnabled() bool {
	return u.TwoFactorEnabled
}

// IsActive checks if user is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive && u.DeletedAt == nil
}
