package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingAuthHeader  = errors.New("Authorization header is required")
	ErrInvalidTokenFormat = errors.New("Invalid token format")
	ErrUserNotFound       = errors.New("user not found")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	VerifyToken(authHeader string) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
	logger      *slog.Logger
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, log *slog.Logger) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
		logger:      logger.WithComponent(log, "auth_service"),
	}
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

// Login checks the credentials and issues an access token. An unknown email and a wrong
// password both return ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	// registration stores the trimmed address
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("error when getting user from database", "error", err)
		return nil, "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, existingUser.Email)
	if err != nil {
		s.logger.Error("error during JWT generation", "error", err)
		return nil, "", ErrInternalError
	}

	return existingUser, jwtToken, nil
}

// VerifyToken parses a "Bearer <token>" header and returns the user id carried by the token.
func (s *service) VerifyToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
		return "", ErrInvalidTokenFormat
	}

	claims, err := s.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
