package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type ProfileRepository struct {
	client    *mongo.Client
	users     *mongo.Collection
	providers *mongo.Collection
	clients   *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		client:    db.Client(),
		users:     db.Collection(collectionUsers),
		providers: db.Collection(collectionProviderProfiles),
		clients:   db.Collection(collectionClientProfiles),
	}
}

// ApplyProfileUpdate runs the planned writes in a single transaction.
func (r *ProfileRepository) ApplyProfileUpdate(ctx context.Context, userID string, plan domain.ProfilePlan) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("profile update: user id %q: %w", userID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("profile update: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if plan.User != nil {
			res, err := r.users.UpdateOne(sc, bson.M{"_id": oid}, userSet(plan.User, now))
			if err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			if res.MatchedCount == 0 {
				return nil, domain.ErrUserNotFound
			}
		}

		upsert := options.Update().SetUpsert(true)
		if plan.Provider != nil {
			if _, err := r.providers.UpdateOne(sc, bson.M{"user_id": oid}, providerUpsert(plan.Provider, now), upsert); err != nil {
				return nil, fmt.Errorf("upsert provider profile: %w", err)
			}
		}
		if plan.Client != nil {
			if _, err := r.clients.UpdateOne(sc, bson.M{"user_id": oid}, clientUpsert(plan.Client, now), upsert); err != nil {
				return nil, fmt.Errorf("upsert client profile: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
