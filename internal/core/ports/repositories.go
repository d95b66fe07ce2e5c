package ports

import (
	"context"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with its id populated.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail loads a user together with its provider and client profiles.
	// A missing user yields domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProfileRepository applies profile updates.
type ProfileRepository interface {
	// ApplyProfileUpdate runs every non-nil write of plan inside one
	// transaction: either all of them are persisted or none is.
	ApplyProfileUpdate(ctx context.Context, userID string, plan domain.ProfilePlan) error
}

// ProviderFilter narrows a directory listing. Empty fields do not filter.
// Both fields match as case-insensitive substrings.
type ProviderFilter struct {
	City     string
	Category string
}

// ProviderRepository serves the public provider directory.
type ProviderRepository interface {
	// List returns matching profiles newest first, each with its owner's
	// name and avatar only.
	List(ctx context.Context, filter ProviderFilter) ([]domain.ProviderListing, error)
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
