package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

// AnyCity is what the front end sends when no city is selected.
const AnyCity = "Brasil"

type DirectoryService struct {
	repo ports.ProviderRepository
}

func NewDirectoryService(repo ports.ProviderRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListProviders(ctx context.Context, q ports.DirectoryQuery) ([]domain.ProviderListing, error) {
	listings, err := s.repo.List(ctx, BuildProviderFilter(q))
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	if listings == nil {
		listings = []domain.ProviderListing{}
	}
	return listings, nil
}

// BuildProviderFilter turns raw query parameters into a store filter.
func BuildProviderFilter(q ports.DirectoryQuery) ports.ProviderFilter {
	var f ports.ProviderFilter
	if city := strings.TrimSpace(q.City); city != "" && city != AnyCity {
		f.City = city
	}
	f.Category = strings.TrimSpace(q.Category)
	return f
}
