package domain

import "time"

// Role distinguishes people offering a service from people booking one.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProvider
}

// DefaultCategory is assigned when a provider profile is created without one.
const DefaultCategory = "Geral"

// User models an account. PasswordHash never leaves the service boundary.
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	PasswordHash    string           `json:"-"`
	Role            Role             `json:"role"`
	Phone           *string          `json:"phone"`
	AvatarURL       *string          `json:"avatarUrl"`
	ProviderProfile *ProviderProfile `json:"providerProfile"`
	ClientProfile   *ClientProfile   `json:"clientProfile"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ProviderProfile extends a PROVIDER user with what they offer.
type ProviderProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	Bio       *string   `json:"bio"`
	City      *string   `json:"city"`
	BasePrice *float64  `json:"basePrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientProfile extends a CLIENT user with the event they are planning.
// EventDate is free text and is not parsed.
type ClientProfile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	EventType  *string   `json:"eventType"`
	LookingFor *string   `json:"lookingFor"`
	City       *string   `json:"city"`
	EventDate  *string   `json:"eventDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProviderOwner is the public slice of a User shown next to a listing.
type ProviderOwner struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// ProviderListing is a directory entry: the profile plus its owner's public data.
type ProviderListing struct {
	ProviderProfile
	User ProviderOwner `json:"user"`
}
