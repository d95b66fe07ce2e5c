package postgres

import (
	"strings"
	"time"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

func userAssignments(ch *domain.UserChanges, now time.Time) map[string]interface{} {
	m := map[string]interface{}{"updated_at": now}
	if ch.Phone != nil {
		m["phone"] = *ch.Phone
	}
	if ch.AvatarURL != nil {
		m["avatar_url"] = *ch.AvatarURL
	}
	return m
}

// providerAssignments lists the columns overwritten when the profile exists.
// Category is left alone when absent; the insert row carries the default.
func providerAssignments(ch *domain.ProviderChanges, now time.Time) map[string]interface{} {
	m := map[string]interface{}{"updated_at": now}
	if ch.Category != nil {
		m["category"] = *ch.Category
	}
	if ch.Bio != nil {
		m["bio"] = *ch.Bio
	}
	if ch.City != nil {
		m["city"] = *ch.City
	}
	if ch.BasePrice != nil {
		m["base_price"] = *ch.BasePrice
	}
	return m
}

func clientAssignments(ch *domain.ClientChanges, now time.Time) map[string]interface{} {
	m := map[string]interface{}{"updated_at": now}
	if ch.EventType != nil {
		m["event_type"] = *ch.EventType
	}
	if ch.LookingFor != nil {
		m["looking_for"] = *ch.LookingFor
	}
	if ch.City != nil {
		m["city"] = *ch.City
	}
	if ch.EventDate != nil {
		m["event_date"] = *ch.EventDate
	}
	return m
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
