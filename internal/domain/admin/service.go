package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/portfolio/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service is the admin session gate.
type Service struct {
	repo   Repository
	logger *slog.Logger
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a new admin service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

// Login checks credentials against the stored bcrypt hash. Every mismatch
// returns ErrInvalidCredentials and an anonymous session.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	anonymous := Session{State: StateAnonymous}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return anonymous, ErrInvalidInput
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return anonymous, fmt.Errorf("looking up admin user: %w", err)
		}
		// Burn a comparison so unknown usernames cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return anonymous, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return anonymous, ErrInvalidCredentials
	}

	s.logger.Info("admin login", "username", user.Username)
	return Session{State: StateAuthenticated, User: user}, nil
}

// SetPassword creates the admin user or replaces its password hash.
func (s *Service) SetPassword(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("saving admin user: %w", err)
	}
	return user, nil
}

func (s *Service) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}
