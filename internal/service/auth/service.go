package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	UserID      uuid.UUID
}

// Service registers users and authenticates sign-in attempts.
type Service interface {
	// Register creates a new user. Returns a domain validation error for bad input,
	// ErrDuplicateUsername when the username is taken, and a wrapped error otherwise.
	Register(ctx context.Context, username, password string) error

	// Authenticate checks the credentials and issues an access token.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Authenticate(ctx context.Context, username, password string) (*Session, error)
}

// AuthService is the default Service implementation.
type AuthService struct {
	users    store.UserStore
	verifier PasswordVerifier
	tokens   JWTService
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

var _ Service = (*AuthService)(nil)

// NewAuthService creates an AuthService. If logger is nil, the default logger is used.
func NewAuthService(
	users store.UserStore,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*AuthService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register implements Service.Register
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		log.Debug("registration rejected by validation",
			slog.String("username", username),
			slog.String("error", err.Error()))
		return err
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			log.Info("registration rejected: username taken", slog.String("username", username))
			return ErrDuplicateUsername
		case errors.Is(err, domain.ErrValidation):
			return err
		default:
			log.Error("failed to register user",
				slog.String("username", username),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to register user: %w", err)
		}
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username))
	return nil
}

// Authenticate implements Service.Authenticate
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison so timing
			// does not reveal whether the username exists.
			_ = s.verifier.Compare(s.dummyPasswordHash(), password)
			log.Debug("sign-in failed", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for sign-in",
			slog.String("username", username),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("sign-in failed", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue access token",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	log.Info("user signed in", slog.String("user_id", user.ID.String()))
	return &Session{AccessToken: token, UserID: user.ID}, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if err == nil {
			s.dummyHash = string(hash)
		}
	})
	return s.dummyHash
}
