package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/store"
	"github.com/bryan-cox/ticktock/internal/telemetry"
)

// AuthService checks credentials and session tokens.
type AuthService struct {
	store  store.Store
	logger *slog.Logger
}

func NewAuthService(s store.Store, logger *slog.Logger) *AuthService {
	return &AuthService{store: s, logger: logger}
}

// Login verifies the credentials and returns the user with a session token,
// issuing one on first login.
func (s *AuthService) Login(ctx context.Context, email, password string) (user model.User, err error) {
	defer func() { telemetry.LoginAttempts.WithLabelValues(telemetry.ResultLabel(err)).Inc() }()

	user, err = s.store.FindUserByEmail(ctx, email)
	var unauth *model.UnauthorizedError
	if errors.As(err, &unauth) {
		return model.User{}, &model.UnauthorizedError{Reason: "invalid credentials"}
	}
	if err != nil {
		return model.User{}, err
	}
	if password == "" || subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		s.logger.Warn("login rejected", slog.String("email", email))
		return model.User{}, &model.UnauthorizedError{Reason: "invalid credentials"}
	}

	if user.Token == "" {
		user.Token = uuid.NewString()
		if err := s.store.SaveUser(ctx, user); err != nil {
			return model.User{}, err
		}
	}
	s.logger.Info("user logged in", slog.String("email", email))
	return user, nil
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.User, error) {
	return s.store.FindUserByToken(ctx, token)
}
