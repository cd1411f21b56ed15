package handlers

import (
	"errors"
	"time"

	"clinic-opd-server/internal/models"
	"clinic-opd-server/internal/store"
)

// --- mockOpdStore ---
// Compile-time check to ensure mockOpdStore implements OpdRecordStore
var _ store.OpdRecordStore = (*mockOpdStore)(nil)

type mockOpdStore struct {
	CreateFunc   func(in *store.CreateOpdInput) (*models.OpdRecord, error)
	FindPageFunc func(f store.OpdFilter) (*store.OpdPage, error)
	FindOneFunc  func(id int) (*models.OpdRecord, error)
	UpdateFunc   func(id int, patch store.Patch) (*models.OpdRecord, error)
	RemoveFunc   func(id int) error
}

func (m *mockOpdStore) Create(in *store.CreateOpdInput) (*models.OpdRecord, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(in)
	}
	return nil, errors.New("CreateFunc not implemented in mock")
}

func (m *mockOpdStore) FindPage(f store.OpdFilter) (*store.OpdPage, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(f)
	}
	return nil, errors.New("FindPageFunc not implemented in mock")
}

func (m *mockOpdStore) FindOne(id int) (*models.OpdRecord, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(id)
	}
	return nil, errors.New("FindOneFunc not implemented in mock")
}

func (m *mockOpdStore) Update(id int, patch store.Patch) (*models.OpdRecord, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, patch)
	}
	return nil, errors.New("UpdateFunc not implemented in mock")
}

func (m *mockOpdStore) Remove(id int) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(id)
	}
	return errors.New("RemoveFunc not implemented in mock")
}

// --- mockUserStore ---
var _ store.UserStore = (*mockUserStore)(nil)

type mockUserStore struct {
	CreateFunc      func(u *models.User) error
	SaveFunc        func(u *models.User) error
	FindByIDFunc    func(id int) (*models.User, error)
	FindByEmailFunc func(email string) (*models.User, error)
	FindByLoginFunc func(login string, role models.UserRole) (*models.User, error)
	FindTakenFunc   func(username, email string) (*models.User, error)
}

func (m *mockUserStore) Create(u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(u)
	}
	return nil
}

func (m *mockUserStore) Save(u *models.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(u)
	}
	return nil
}

func (m *mockUserStore) FindByID(id int) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindByEmail(email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindByLogin(login string, role models.UserRole) (*models.User, error) {
	if m.FindByLoginFunc != nil {
		return m.FindByLoginFunc(login, role)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindTaken(username, email string) (*models.User, error) {
	if m.FindTakenFunc != nil {
		return m.FindTakenFunc(username, email)
	}
	return nil, store.ErrNotFound
}

// --- mockOtpStore ---
var _ store.OtpStore = (*mockOtpStore)(nil)

type mockOtpStore struct {
	ReplaceFunc func(email, code string, expiresAt time.Time) error
	FindFunc    func(email, code string) (*models.Otp, error)
	DeleteFunc  func(id int) error

	DeletedIDs []int
}

func (m *mockOtpStore) Replace(email, code string, expiresAt time.Time) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(email, code, expiresAt)
	}
	return nil
}

func (m *mockOtpStore) Find(email, code string) (*models.Otp, error) {
	if m.FindFunc != nil {
		return m.FindFunc(email, code)
	}
	return nil, store.ErrNotFound
}

func (m *mockOtpStore) Delete(id int) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// --- mockMailer ---

type mockMailer struct {
	SendFunc func(to, subject, body string) error

	SentTo   []string
	SentBody []string
}

func (m *mockMailer) Send(to, subject, body string) error {
	m.SentTo = append(m.SentTo, to)
	m.SentBody = append(m.SentBody, body)
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}
