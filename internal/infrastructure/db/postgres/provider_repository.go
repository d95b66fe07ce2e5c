package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// List preloads only the owner's id, name and avatar.
func (r *ProviderRepository) List(ctx context.Context, filter ports.ProviderFilter) ([]domain.ProviderListing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar_url")
		})
	if filter.City != "" {
		q = q.Where("city ILIKE ?", containsPattern(filter.City))
	}
	if filter.Category != "" {
		q = q.Where("category ILIKE ?", containsPattern(filter.Category))
	}

	var rows []ProviderProfile
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	out := make([]domain.ProviderListing, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toListing())
	}
	return out, nil
}
