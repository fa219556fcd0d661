package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a verified customer. Accounts are only created once the
// signup OTP has been confirmed; Coins and Pro state are mutated afterwards.
type Account struct {
	BaseModel
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	PasswordHash string     `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	Coins        int        `json:"coins"`
	IsPro        bool       `json:"is_pro"`
	ProExpiresAt *time.Time `json:"pro_expires_at,omitempty"`
	Orders       []Order    `json:"orders,omitempty"`
}

// ProActive reports whether the Pro subscription is currently in effect.
func (a *Account) ProActive(now time.Time) bool {
	return a.IsPro && a.ProExpiresAt != nil && a.ProExpiresAt.After(now)
}

// PendingRegistration holds signup data until the email is verified.
// Rows live at most as long as their OTP challenge and are removed when
// verification succeeds.
type PendingRegistration struct {
	BaseModel
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"index" json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// OTPChallenge stores the hashed one-time code sent to a signup email.
// Only the newest challenge per email governs verification; resend deletes
// older rows before inserting a fresh one.
type OTPChallenge struct {
	BaseModel
	RegistrationID uuid.UUID `gorm:"type:uuid;index" json:"registration_id"`
	Email          string    `gorm:"index" json:"email"`
	CodeHash       string    `json:"-"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the challenge can no longer be redeemed.
func (ch *OTPChallenge) Expired(now time.Time) bool {
	return ch.ExpiresAt.Before(now)
}
