package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviderProfiles)}
}

func (r *ProviderRepository) List(ctx context.Context, filter ports.ProviderFilter) ([]domain.ProviderListing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, directoryPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []listingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode providers: %w", err)
	}

	out := make([]domain.ProviderListing, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
