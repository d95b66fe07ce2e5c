package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ApplyProfileUpdate runs the planned writes in a single transaction.
func (r *ProfileRepository) ApplyProfileUpdate(ctx context.Context, userID string, plan domain.ProfilePlan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.User != nil {
			res := tx.Model(&User{}).Where("id = ?", userID).Updates(userAssignments(plan.User, now))
			if res.Error != nil {
				return fmt.Errorf("update user: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrUserNotFound
			}
		}

		if ch := plan.Provider; ch != nil {
			row := ProviderProfile{
				ID:        uuid.NewString(),
				UserID:    userID,
				Category:  domain.DefaultCategory,
				Bio:       ch.Bio,
				City:      ch.City,
				BasePrice: ch.BasePrice,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if ch.Category != nil {
				row.Category = *ch.Category
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(providerAssignments(ch, now)),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert provider profile: %w", err)
			}
		}

		if ch := plan.Client; ch != nil {
			row := ClientProfile{
				ID:         uuid.NewString(),
				UserID:     userID,
				EventType:  ch.EventType,
				LookingFor: ch.LookingFor,
				City:       ch.City,
				EventDate:  ch.EventDate,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(clientAssignments(ch, now)),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert client profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
