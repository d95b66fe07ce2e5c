package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        *string            `bson:"phone,omitempty"`
	AvatarURL    *string            `bson:"avatar_url,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type providerProfileDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Category  string             `bson:"category"`
	Bio       *string            `bson:"bio,omitempty"`
	City      *string            `bson:"city,omitempty"`
	BasePrice *float64           `bson:"base_price,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type clientProfileDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	EventType  *string            `bson:"event_type,omitempty"`
	LookingFor *string            `bson:"looking_for,omitempty"`
	City       *string            `bson:"city,omitempty"`
	EventDate  *string            `bson:"event_date,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type ownerDoc struct {
	Name      string  `bson:"name"`
	AvatarURL *string `bson:"avatar_url,omitempty"`
}

// listingDoc is the shape produced by the directory aggregation.
type listingDoc struct {
	Profile providerProfileDoc `bson:",inline"`
	Owner   ownerDoc           `bson:"owner"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Phone:        d.Phone,
		AvatarURL:    d.AvatarURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d providerProfileDoc) toDomain() *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Category:  d.Category,
		Bio:       d.Bio,
		City:      d.City,
		BasePrice: d.BasePrice,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d clientProfileDoc) toDomain() *domain.ClientProfile {
	return &domain.ClientProfile{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		EventType:  d.EventType,
		LookingFor: d.LookingFor,
		City:       d.City,
		EventDate:  d.EventDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (d listingDoc) toDomain() domain.ProviderListing {
	return domain.ProviderListing{
		ProviderProfile: *d.Profile.toDomain(),
		User: domain.ProviderOwner{
			Name:      d.Owner.Name,
			AvatarURL: d.Owner.AvatarURL,
		},
	}
}
