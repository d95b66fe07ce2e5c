package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

// containsFold matches s anywhere in the field, ignoring case. s is quoted so
// user input is never interpreted as a pattern.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func providerFilter(f ports.ProviderFilter) bson.M {
	filter := bson.M{}
	if f.City != "" {
		filter["city"] = containsFold(f.City)
	}
	if f.Category != "" {
		filter["category"] = containsFold(f.Category)
	}
	return filter
}

// directoryPipeline lists matching provider profiles newest first, joined with
// the owner's name and avatar. Email and password hash are never projected.
func directoryPipeline(f ports.ProviderFilter) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: providerFilter(f)}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "let", Value: bson.D{{Key: "uid", Value: "$user_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$uid"}}}}}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}, {Key: "name", Value: 1}, {Key: "avatar_url", Value: 1}}}},
			}},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
	}
}

func userSet(ch *domain.UserChanges, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if ch.Phone != nil {
		set["phone"] = *ch.Phone
	}
	if ch.AvatarURL != nil {
		set["avatar_url"] = *ch.AvatarURL
	}
	return bson.M{"$set": set}
}

// providerUpsert merges ch into the profile; an insert gets created_at and,
// when ch carries no category, the default one.
func providerUpsert(ch *domain.ProviderChanges, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	onInsert := bson.M{"created_at": now}

	if ch.Category != nil {
		set["category"] = *ch.Category
	} else {
		onInsert["category"] = domain.DefaultCategory
	}
	if ch.Bio != nil {
		set["bio"] = *ch.Bio
	}
	if ch.City != nil {
		set["city"] = *ch.City
	}
	if ch.BasePrice != nil {
		set["base_price"] = *ch.BasePrice
	}
	return bson.M{"$set": set, "$setOnInsert": onInsert}
}

func clientUpsert(ch *domain.ClientChanges, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if ch.EventType != nil {
		set["event_type"] = *ch.EventType
	}
	if ch.LookingFor != nil {
		set["looking_for"] = *ch.LookingFor
	}
	if ch.City != nil {
		set["city"] = *ch.City
	}
	if ch.EventDate != nil {
		set["event_date"] = *ch.EventDate
	}
	return bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": now}}
}
