package service

import (
	"errors"

	"github.com/rs/zerolog/log"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
	"go-smart-inventory/pkg/jwt"
)

var (
	// ErrInvalidCredentials is deliberately uniform for unknown email
	// and wrong password, so login cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(username, email, password string, role model.Role) error
	Login(email, password string) (string, error)
	Profile(email string) (model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(username, email, password string, role model.Role) error {
	if role == "" {
		role = model.RoleStaff
	}
	if !role.Valid() {
		return ErrInvalidRole
	}

	// Unique email check before the insert; the DB index backs it up
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return ErrEmailTaken
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Role:     role,
	}
	if errs := validateInput(user); errs != nil {
		return errs
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}

	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	log.Info().Str("email", email).Str("role", role.String()).Msg("user registered")
	return nil
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return "", errors.New("failed to generate token")
	}

	log.Info().Str("email", email).Msg("user logged in")
	return token, nil
}

// Profile returns the account behind a verified token subject.
func (s *authService) Profile(email string) (model.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return model.UserResponse{}, ErrUserNotFound
	}
	return user.ToResponse(), nil
}
