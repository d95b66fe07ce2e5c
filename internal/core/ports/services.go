package ports

import (
	"context"
	"io"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

// RegisterInput carries an already validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error
}

// DirectoryQuery holds raw query parameters as received from the caller.
type DirectoryQuery struct {
	City     string
	Category string
}

type DirectoryService interface {
	ListProviders(ctx context.Context, q DirectoryQuery) ([]domain.ProviderListing, error)
}

type UploadService interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
}
