package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
	"github.com/nunu-app/marketplace-api/pkg/password"
	"github.com/nunu-app/marketplace-api/pkg/token"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher *password.Hasher
	tokens *token.Manager
	log    zerolog.Logger

	// dummyHash is compared against when the email is unknown so that both
	// failed-login paths pay for one bcrypt comparison.
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher *password.Hasher, tokens *token.Manager, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("timing-equalizer")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy hash")
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log, dummyHash: dummy}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, domain.NewValidationError("role", "role must be one of: CLIENT PROVIDER")
	}
	email := strings.TrimSpace(in.Email)

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login never tells an unknown email apart from a wrong password: both
// return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Check(pass, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Check(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, string(user.Role), user.Name)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: signed, User: user}, nil
}
