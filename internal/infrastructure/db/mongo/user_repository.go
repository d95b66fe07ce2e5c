package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

type UserRepository struct {
	users     *mongo.Collection
	providers *mongo.Collection
	clients   *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:     db.Collection(collectionUsers),
		providers: db.Collection(collectionProviderProfiles),
		clients:   db.Collection(collectionClientProfiles),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Phone:        user.Phone,
		AvatarURL:    user.AvatarURL,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindByEmail loads the user and whichever profiles it owns.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := doc.toDomain()

	var provider providerProfileDoc
	switch err := r.providers.FindOne(ctx, bson.M{"user_id": doc.ID}).Decode(&provider); {
	case err == nil:
		user.ProviderProfile = provider.toDomain()
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("find provider profile: %w", err)
	}

	var client clientProfileDoc
	switch err := r.clients.FindOne(ctx, bson.M{"user_id": doc.ID}).Decode(&client); {
	case err == nil:
		user.ClientProfile = client.toDomain()
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	return user, nil
}
