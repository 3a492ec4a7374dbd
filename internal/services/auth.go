package services

import (
	"errors"
	"strings"

	"github.com/oxbowlabs/taper/internal/models"
	"github.com/oxbowlabs/taper/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password too short")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// NormalizeEmail is the canonical form used for uniqueness checks and login
// lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt-hashed password. Profile fields on
// the passed user are kept; identity fields are overwritten.
func (service *AuthService) Register(email string, password string, profile models.User) (models.User, error) {
	normalized := NormalizeEmail(email)
	if len(password) < MinPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	taken, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := profile
	user.ID = 0
	user.Email = normalized
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	if user.WeightUnit == "" {
		user.WeightUnit = models.WeightUnitLbs
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the matched user. A missing account
// and a wrong password report the same error.
func (service *AuthService) Login(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// ChangePassword verifies the current password before setting the new one
// and clears any forced-change flag.
func (service *AuthService) ChangePassword(userID uint, current string, next string) error {
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}
	user, err := service.users.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	return service.users.Save(&user)
}

// ResetPassword sets a generated temporary password on the account and flags
// it for a forced change at next login. Returns the plaintext temporary
// password for one-time delivery.
func (service *AuthService) ResetPassword(email string) (string, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	temporary, err := security.RandomString(12, security.TempPasswordAlphabet)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	if err := service.users.Save(&user); err != nil {
		return "", err
	}
	return temporary, nil
}

// SaveProfile persists profile edits. Identity and credential fields are not
// writable through this path.
func (service *AuthService) SaveProfile(userID uint, profile models.User) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if profile.StartDay != "" {
		if _, err := ParseDay(profile.StartDay); err != nil {
			return models.User{}, err
		}
	}
	if profile.TargetDay != "" {
		if _, err := ParseDay(profile.TargetDay); err != nil {
			return models.User{}, err
		}
	}

	user.DisplayName = profile.DisplayName
	user.StartWeight = profile.StartWeight
	user.GoalWeight = profile.GoalWeight
	user.HeightInches = profile.HeightInches
	user.StartDay = profile.StartDay
	user.TargetDay = profile.TargetDay
	if profile.WeightUnit == models.WeightUnitLbs || profile.WeightUnit == models.WeightUnitKg {
		user.WeightUnit = profile.WeightUnit
	}
	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
