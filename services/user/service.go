package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "hormelys/database/repository/user"
	"hormelys/models"
	"hormelys/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = time.Hour

// ErrInvalidCredentials covers both unknown email and wrong password; the
// caller cannot tell which.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserExists signals a duplicate email or username at registration.
var ErrUserExists = errors.New("user already exists")

// Service defines back-office account operations.
type Service interface {
	// Register creates an account and returns a signed token.
	Register(username, email, password string) (string, error)
	// Authenticate verifies credentials and returns a signed token.
	Authenticate(email, password string) (string, error)
}

// DefaultUserService implements Service.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates the account with a bcrypt password hash and returns a
// fresh JWT.
func (s *DefaultUserService) Register(username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return "", fmt.Errorf("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("registration failed, please try again")
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleEditor,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return "", ErrUserExists
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return "", fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Register: failed to sign token", zap.Error(err))
		return "", fmt.Errorf("registration failed, please try again")
	}
	return token, nil
}

// Authenticate verifies the credentials and returns a fresh JWT.
func (s *DefaultUserService) Authenticate(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(rec.ID, rec.Role, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to sign token", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}
	return token, nil
}
