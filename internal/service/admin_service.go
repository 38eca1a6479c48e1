package service

import (
	"errors"
	"strings"

	"github.com/aerosite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound          = errors.New("admin not found")
	ErrAdminExists            = errors.New("admin already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
)

// AdminService handles administrator accounts and credential checks.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates an AdminService instance.
func NewAdminService(gdb *gorm.DB) *AdminService {
	return &AdminService{db: gdb}
}

// Authenticate looks up an admin by email and verifies the password.
// Unknown emails and wrong passwords both report ErrInvalidCredentials.
func (s *AdminService) Authenticate(email, password string) (*db.Admin, error) {
	var admin db.Admin
	err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// Register creates a new admin with the default role.
func (s *AdminService) Register(email, password, name string) (*db.Admin, error) {
	email = strings.TrimSpace(email)

	var existing db.Admin
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin := db.Admin{
		Email: email,
		Name:  strings.TrimSpace(name),
		Role:  db.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Get fetches an admin by id.
func (s *AdminService) Get(id uint) (*db.Admin, error) {
	var admin db.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// UpdateProfile changes an admin's display name and email. Blank values
// leave the current field untouched.
func (s *AdminService) UpdateProfile(id uint, name, email string) (*db.Admin, error) {
	admin, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		admin.Name = name
	}
	if email = strings.TrimSpace(email); email != "" && email != admin.Email {
		var existing db.Admin
		if err := s.db.Where("email = ? AND id <> ?", email, id).First(&existing).Error; err == nil {
			return nil, ErrAdminExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		admin.Email = email
	}

	if err := s.db.Save(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// ChangePassword verifies the current password before storing the new
// one.
func (s *AdminService) ChangePassword(id uint, currentPassword, newPassword string) error {
	admin, err := s.Get(id)
	if err != nil {
		return err
	}

	if !admin.CheckPassword(currentPassword) {
		return ErrCurrentPasswordInvalid
	}
	if err := admin.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.Save(admin).Error
}
