package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 10

var (
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailAlreadyExists = errors.New("User with this email already exists")
	ErrPasswordTooLong    = errors.New("password must not be longer than 72 bytes")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service interface {
	Register(ctx context.Context, email, password string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewUserService(repo Repository, bcryptCost int, log *slog.Logger) Service {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger.WithComponent(log, "user_service"),
	}
}

func (s *service) hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// IsValidationError reports whether err is a client input problem rather than a server failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrPasswordTooLong)
}

func (s *service) Register(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.getUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("could not check for existing user", "error", err)
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, err
		}
		s.logger.Error("error during hashing the password", "error", err)
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.createUser(ctx, user); err != nil {
		// a concurrent registration can still win the race; the unique constraint decides
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error("error during creating the user", "error", err)
		return nil, ErrInternalError
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.getUserByID(ctx, userID)
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.getUserByEmail(ctx, email)
}
