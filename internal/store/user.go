package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-opd-server/internal/models"
)

// GormUserStore is the gorm-backed UserStore.
type GormUserStore struct {
	db *gorm.DB
}

var _ UserStore = (*GormUserStore)(nil)

// NewGormUserStore creates a new GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *GormUserStore) Save(u *models.User) error {
	return s.db.Save(u).Error
}

func (s *GormUserStore) FindByID(id int) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) FindByLogin(login string, role models.UserRole) (*models.User, error) {
	var u models.User
	err := s.db.Where("username = ? AND role = ?", login, role).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("email = ? AND role = ?", login, role).First(&u).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) FindTaken(username, email string) (*models.User, error) {
	var u models.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GormOtpStore is the gorm-backed OtpStore.
type GormOtpStore struct {
	db *gorm.DB
}

var _ OtpStore = (*GormOtpStore)(nil)

// NewGormOtpStore creates a new GormOtpStore.
func NewGormOtpStore(db *gorm.DB) *GormOtpStore {
	return &GormOtpStore{db: db}
}

func (s *GormOtpStore) Replace(email, code string, expiresAt time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.Otp{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Otp{Email: email, Code: code, ExpiresAt: expiresAt}).Error
	})
}

func (s *GormOtpStore) Find(email, code string) (*models.Otp, error) {
	var otp models.Otp
	err := s.db.Where("email = ? AND code = ?", email, code).Order("id DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (s *GormOtpStore) Delete(id int) error {
	return s.db.Delete(&models.Otp{}, id).Error
}
