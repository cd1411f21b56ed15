package models

import (
	"time"
)

// Otp is a one-time email verification code. Codes are replaced on every
// send and consumed on successful verification.
type Otp struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;index;not null" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *Otp) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
