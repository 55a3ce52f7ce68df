package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finance-manager/internal/auth"
	"finance-manager/models"
)

// UserService owns identity: registration, credential verification and
// token issuance, and the current-user profile operations.
type UserService struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
}

func NewUserService(db *gorm.DB, tokens *auth.TokenIssuer) *UserService {
	return &UserService{db: db, tokens: tokens}
}

type RegisterInput struct {
	Login           string
	Email           string
	Password        string
	DefaultCurrency string
}

type UpdateUserInput struct {
	Login           *string
	Email           *string
	Password        *string
	DefaultCurrency *string
}

func (s *UserService) Register(in RegisterInput) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("login = ? OR email = ?", in.Login, in.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("a user with this login or email already exists: %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Login:           in.Login,
		Email:           in.Email,
		PasswordHash:    string(hash),
		DefaultCurrency: in.DefaultCurrency,
	}
	if user.DefaultCurrency == "" {
		user.DefaultCurrency = "PLN"
	}
	return s.db.Create(&user).Error
}

// Authenticate verifies the credentials and returns a signed token together
// with the user. Invalid login and invalid password are indistinguishable
// to the caller.
func (s *UserService) Authenticate(login, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("invalid login or password: %w", ErrAccessDenied)
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid login or password: %w", ErrAccessDenied)
	}

	token, err := s.tokens.Issue(user.ID, user.Login, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a merge patch to the user's profile. Login and email
// changes re-check uniqueness; a new password is re-hashed.
func (s *UserService) Update(id uint, in UpdateUserInput) error {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if in.Login != nil && *in.Login != "" && *in.Login != user.Login {
		var count int64
		if err := s.db.Model(&models.User{}).Where("login = ?", *in.Login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("login is already taken: %w", ErrConflict)
		}
		user.Login = *in.Login
	}

	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", *in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("email is already taken: %w", ErrConflict)
		}
		user.Email = *in.Email
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}

	if in.DefaultCurrency != nil && *in.DefaultCurrency != "" {
		user.DefaultCurrency = *in.DefaultCurrency
	}

	return s.db.Save(&user).Error
}

func (s *UserService) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
