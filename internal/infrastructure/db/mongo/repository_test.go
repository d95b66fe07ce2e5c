package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMockT(t)
	user := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Role: domain.RoleClient}

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := NewUserRepository(mt.DB).Create(context.Background(), user)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(got.ID); err != nil {
			mt.Fatalf("expected generated object id, got %q", got.ID)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))

		if _, err := NewUserRepository(mt.DB).Create(context.Background(), user); !errors.Is(err, domain.ErrEmailTaken) {
			mt.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := newMockT(t)
	userID := primitive.NewObjectID()

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "marketplace.users", mtest.FirstBatch))

		if _, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("with provider profile", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "marketplace.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "name", Value: "Ana"},
				{Key: "email", Value: "ana@example.com"},
				{Key: "password_hash", Value: "hash"},
				{Key: "role", Value: "PROVIDER"},
			}),
			mtest.CreateCursorResponse(0, "marketplace.provider_profiles", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: userID},
				{Key: "category", Value: "DJ"},
			}),
			mtest.CreateCursorResponse(0, "marketplace.client_profiles", mtest.FirstBatch),
		)

		got, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "ana@example.com")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if got.ID != userID.Hex() || got.Role != domain.RoleProvider {
			mt.Fatalf("unexpected user %+v", got)
		}
		if got.ProviderProfile == nil || got.ProviderProfile.Category != "DJ" {
			mt.Fatalf("expected provider profile, got %+v", got.ProviderProfile)
		}
		if got.ClientProfile != nil {
			mt.Fatalf("expected no client profile, got %+v", got.ClientProfile)
		}
	})
}

func TestProviderRepository_List(t *testing.T) {
	mt := newMockT(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("decodes owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "marketplace.provider_profiles", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: primitive.NewObjectID()},
			{Key: "category", Value: "Fotografia"},
			{Key: "city", Value: "Recife"},
			{Key: "base_price", Value: 300.5},
			{Key: "created_at", Value: created},
			{Key: "owner", Value: bson.D{{Key: "name", Value: "Bia"}}},
		}))

		got, err := NewProviderRepository(mt.DB).List(context.Background(), ports.ProviderFilter{City: "recife"})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			mt.Fatalf("expected one listing, got %d", len(got))
		}
		l := got[0]
		if l.Category != "Fotografia" || l.City == nil || *l.City != "Recife" || l.BasePrice == nil || *l.BasePrice != 300.5 {
			mt.Fatalf("unexpected profile %+v", l.ProviderProfile)
		}
		if l.User.Name != "Bia" || l.User.AvatarURL != nil {
			mt.Fatalf("unexpected owner %+v", l.User)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "aggregate" {
			mt.Fatalf("expected an aggregate command, got %+v", started)
		}
	})

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "marketplace.provider_profiles", mtest.FirstBatch))

		got, err := NewProviderRepository(mt.DB).List(context.Background(), ports.ProviderFilter{})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})
}
