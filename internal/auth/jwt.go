package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const DefaultJWTDuration = 24 * time.Hour

type JWTManagerInterface interface {
	GenerateAccessJWT(userID, email string) (string, error)
	ValidateAccessToken(tokenString string) (*AccessTokenCustomClaims, error)
}

type AccessTokenCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewJWTManager(secret string, duration time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	if duration <= 0 {
		duration = DefaultJWTDuration
	}
	return &JWTManager{
		secret:   []byte(secret),
		duration: duration,
		now:      time.Now,
	}, nil
}

func (j *JWTManager) GenerateAccessJWT(userID, email string) (string, error) {
	now := j.now()
	claims := &AccessTokenCustomClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (*AccessTokenCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredJWTToken
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*AccessTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidJWTToken
	}

	return claims, nil
}
