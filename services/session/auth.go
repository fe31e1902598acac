package session

import (
	"context"
	"errors"
	"fmt"

	"mightymoves/models"
	"mightymoves/services/backend"

	"go.uber.org/zap"
)

// ErrNoToken is returned when the backend accepted credentials but issued no token.
var ErrNoToken = errors.New("backend did not return a session token")

// AuthService resolves and maintains the signed-in user of a client.
type AuthService struct {
	Backend backend.Client
	Store   Store
	Logger  *zap.Logger
}

func NewAuthService(client backend.Client, store Store, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{Backend: client, Store: store, Logger: logger}
}

// CurrentUser resolves the stored token. A token the backend rejects is removed
// and the client is treated as signed out (nil user, nil error).
func (s *AuthService) CurrentUser(ctx context.Context, clientID string) (*models.User, error) {
	token, err := s.Store.Token(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	user, err := s.Backend.UserInfo(ctx, token)
	if err != nil {
		s.Logger.Info("Dropping stale session token", zap.String("clientID", clientID), zap.Error(err))
		if rmErr := s.Store.RemoveToken(ctx, clientID); rmErr != nil {
			return nil, fmt.Errorf("failed to clear token: %w", rmErr)
		}
		return nil, nil
	}
	return user, nil
}

// Login exchanges credentials for a token and stores it.
func (s *AuthService) Login(ctx context.Context, clientID string, req models.LoginRequest) (*models.User, error) {
	res, err := s.Backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, clientID, res)
}

// Register creates an account. When the backend answers without a token the
// portal signs in with the same credentials.
func (s *AuthService) Register(ctx context.Context, clientID string, req models.RegisterRequest) (*models.User, error) {
	res, err := s.Backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Token == "" {
		return s.Login(ctx, clientID, models.LoginRequest{Email: req.Email, Password: req.Password})
	}
	return s.establish(ctx, clientID, res)
}

// Logout forgets the client's token.
func (s *AuthService) Logout(ctx context.Context, clientID string) error {
	return s.Store.RemoveToken(ctx, clientID)
}

func (s *AuthService) establish(ctx context.Context, clientID string, res *models.AuthResponse) (*models.User, error) {
	if res == nil || res.Token == "" {
		return nil, ErrNoToken
	}
	if err := s.Store.SetToken(ctx, clientID, res.Token); err != nil {
		return nil, err
	}
	if res.User != nil {
		return res.User, nil
	}
	user, err := s.Backend.UserInfo(ctx, res.Token)
	if err != nil {
		// the token is stored; the profile will resolve on the next CurrentUser call
		s.Logger.Warn("Failed to resolve user after sign-in", zap.String("clientID", clientID), zap.Error(err))
		return &models.User{}, nil
	}
	return user, nil
}
