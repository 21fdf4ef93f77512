// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/storage"
	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

const (
	usersDir    = "users"
	profileFile = "profile.json"
)

var (
	ErrWrongPassword    = errors.New("current password does not match")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)

// ProfileUpdate is the editable part of the profile form.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the profile form fields.
func (u ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&u.Email, validation.Required, is.Email),
	)
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
	Confirm string `json:"confirm_password"`
}

// Validate checks the password form fields. Current stays optional so
// an account without a password yet can set its first one.
func (p PasswordChange) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.New, validation.Required, validation.Length(8, 72)),
		validation.Field(&p.Confirm, validation.Required),
	)
}

// UserService manages the single local account shown on the profile
// screen.
type UserService struct {
	mu      sync.Mutex
	profile *models.UserProfile
	storage *storage.FileStorage
	logger  *utils.Logger
}

// NewUserService loads the stored profile, creating a default one on
// first run.
func NewUserService(fs *storage.FileStorage) (*UserService, error) {
	s := &UserService{
		storage: fs,
		logger:  utils.GetLogger(),
	}

	if fs.FileExists(usersDir, profileFile) {
		var profile models.UserProfile
		if err := fs.LoadJSONFile(usersDir, profileFile, &profile); err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		s.profile = &profile
		return s, nil
	}

	now := time.Now()
	s.profile = &models.UserProfile{
		ID:        uuid.NewString(),
		Name:      "Roteirista",
		Email:     "",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.save()

	return s, nil
}

func (s *UserService) save() {
	if err := s.storage.SaveJSONFile(usersDir, profileFile, s.profile); err != nil {
		s.logger.Errorf("failed to persist profile: %v", err)
	}
}

// GetProfile returns a copy of the account record.
func (s *UserService) GetProfile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profile
}

// UpdateProfile applies a validated profile form.
func (s *UserService) UpdateProfile(update ProfileUpdate) (models.UserProfile, error) {
	if err := update.Validate(); err != nil {
		return models.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Name = update.Name
	s.profile.Email = update.Email
	s.profile.UpdatedAt = time.Now()
	s.save()

	return *s.profile, nil
}

// ChangePassword verifies the current password and stores a hash of
// the new one. An account without a password yet accepts any current
// value.
func (s *UserService) ChangePassword(change PasswordChange) error {
	if err := change.Validate(); err != nil {
		return err
	}
	if change.New != change.Confirm {
		return ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.profile.PasswordHash), []byte(change.Current)); err != nil {
			return ErrWrongPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(change.New), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.profile.PasswordHash = string(hash)
	s.profile.UpdatedAt = time.Now()
	s.save()

	return nil
}

// CheckPassword verifies a login attempt.
func (s *UserService) CheckPassword(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile.PasswordHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(s.profile.PasswordHash), []byte(password)) == nil
}
