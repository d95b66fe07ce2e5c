package postgres

import (
	"time"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type User struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Name            string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	Role            string `gorm:"type:varchar(10);not null"`
	Phone           *string
	AvatarURL       *string
	ProviderProfile *ProviderProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ClientProfile   *ClientProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ProviderProfile struct {
	ID        string  `gorm:"primaryKey;type:uuid"`
	UserID    string  `gorm:"type:uuid;uniqueIndex;not null"`
	Category  string  `gorm:"not null;default:'Geral'"`
	Bio       *string `gorm:"type:text"`
	City      *string
	BasePrice *float64  `gorm:"type:numeric(10,2)"`
	User      *User     `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type ClientProfile struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	UserID     string `gorm:"type:uuid;uniqueIndex;not null"`
	EventType  *string
	LookingFor *string `gorm:"type:text"`
	City       *string
	EventDate  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) toDomain() *domain.User {
	out := &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         domain.Role(u.Role),
		Phone:        u.Phone,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ProviderProfile != nil {
		out.ProviderProfile = u.ProviderProfile.toDomain()
	}
	if u.ClientProfile != nil {
		out.ClientProfile = u.ClientProfile.toDomain()
	}
	return out
}

func (p *ProviderProfile) toDomain() *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ID:        p.ID,
		UserID:    p.UserID,
		Category:  p.Category,
		Bio:       p.Bio,
		City:      p.City,
		BasePrice: p.BasePrice,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (p *ProviderProfile) toListing() domain.ProviderListing {
	l := domain.ProviderListing{ProviderProfile: *p.toDomain()}
	if p.User != nil {
		l.User = domain.ProviderOwner{Name: p.User.Name, AvatarURL: p.User.AvatarURL}
	}
	return l
}

func (c *ClientProfile) toDomain() *domain.ClientProfile {
	return &domain.ClientProfile{
		ID:         c.ID,
		UserID:     c.UserID,
		EventType:  c.EventType,
		LookingFor: c.LookingFor,
		City:       c.City,
		EventDate:  c.EventDate,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
