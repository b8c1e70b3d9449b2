package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService orchestrates registration and login over the credential
// store and the token manager.
type AuthService struct {
	Repo   repo.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Tokens: tokens, Logger: logger}
}

// LoginResult is returned from a successful login. Registration never
// issues a token; clients log in afterwards.
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register stores a new user with a bcrypt hash of the password.
// The username is trimmed before the uniqueness check so that
// " alice" and "alice" are the same account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	exists, err := s.Repo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		if s.Logger != nil {
			s.Logger.WithField("username", username).Warn("registration rejected: username taken")
		}
		return nil, ErrDuplicateUsername
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("user registered")
	}
	return u, nil
}

// Login validates credentials and issues a bearer token whose subject
// is the username. A missing user and a wrong password produce the
// same ErrInvalidCredentials; only the log lines differ, so the
// response cannot be used to enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)

	u, err := s.Repo.GetByUsername(username)
	if err != nil || u == nil {
		if s.Logger != nil {
			s.Logger.WithField("username", username).Warn("login failed: user not found")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithField("username", username).Warn("login failed: password mismatch")
		}
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("token issue failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("login successful")
	}
	return &LoginResult{Token: token, Username: u.Username, ExpiresAt: exp}, nil
}
