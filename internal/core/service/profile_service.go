package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// UpdateProfile applies update for the user identified by the token subject.
// An update that touches nothing succeeds without reaching the store.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	plan := update.Plan()
	if plan.Empty() {
		s.log.Debug().Str("user_id", userID).Msg("profile update without changes")
		return nil
	}

	if err := s.repo.ApplyProfileUpdate(ctx, userID, plan); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Bool("user", plan.User != nil).
		Bool("provider", plan.Provider != nil).
		Bool("client", plan.Client != nil).
		Msg("profile updated")
	return nil
}
