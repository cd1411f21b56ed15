package store

import (
	"time"

	"clinic-opd-server/internal/models"
)

// UserStore owns persistence for staff accounts.
type UserStore interface {
	Create(u *models.User) error
	Save(u *models.User) error
	FindByID(id int) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	// FindByLogin looks a user up by username first, then email, scoped
	// to the given role.
	FindByLogin(login string, role models.UserRole) (*models.User, error)
	// FindTaken returns the existing user holding either the username or
	// the email, if any.
	FindTaken(username, email string) (*models.User, error)
}

// OtpStore owns persistence for one-time verification codes.
type OtpStore interface {
	// Replace removes any previous codes for the email and stores a new one.
	Replace(email, code string, expiresAt time.Time) error
	Find(email, code string) (*models.Otp, error)
	Delete(id int) error
}
