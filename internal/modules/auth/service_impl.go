package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/user"
)

const tokenLifetime = 24 * time.Hour

type service struct {
	userRepo user.Repository
	secret   []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(userRepo user.Repository, secret []byte) Service {
	return &service{userRepo: userRepo, secret: secret}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperr.Authf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Authf("invalid credentials")
	}

	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *service) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.Authf("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok {
		return uuid.Nil, apperr.Authf("invalid token claims")
	}
	owner, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Authf("invalid token subject")
	}
	return owner, nil
}
