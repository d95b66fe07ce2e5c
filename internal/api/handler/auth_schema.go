package handler

import (
	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=CLIENT PROVIDER"`
}

type registerResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// loginRequest leaves Password unchecked so an empty one fails like a wrong one.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// userView is the sanitized user returned at login.
type userView struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Role            domain.Role             `json:"role"`
	AvatarURL       *string                 `json:"avatarUrl"`
	Phone           *string                 `json:"phone"`
	ProviderProfile *domain.ProviderProfile `json:"providerProfile"`
	ClientProfile   *domain.ClientProfile   `json:"clientProfile"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		AvatarURL:       u.AvatarURL,
		Phone:           u.Phone,
		ProviderProfile: u.ProviderProfile,
		ClientProfile:   u.ClientProfile,
	}
}
