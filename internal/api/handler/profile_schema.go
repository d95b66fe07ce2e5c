package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

// updateProfileRequest accepts the fields of all three update targets.
// basePrice may be a JSON number or a numeric string.
type updateProfileRequest struct {
	Phone      *string         `json:"phone"`
	AvatarURL  *string         `json:"avatarUrl"  validate:"omitempty,url"`
	Category   *string         `json:"category"   validate:"omitempty,min=2"`
	Bio        *string         `json:"bio"`
	BasePrice  json.RawMessage `json:"basePrice"  swaggertype:"number"`
	City       *string         `json:"city"`
	EventType  *string         `json:"eventType"`
	LookingFor *string         `json:"lookingFor"`
	EventDate  *string         `json:"eventDate"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// toDomain converts the request. A basePrice that cannot be read as a finite
// number is dropped and reported through ok=false instead of failing the call.
func (r updateProfileRequest) toDomain() (domain.ProfileUpdate, bool) {
	price, ok := coercePrice(r.BasePrice)
	return domain.ProfileUpdate{
		Phone:      r.Phone,
		AvatarURL:  r.AvatarURL,
		Category:   r.Category,
		Bio:        r.Bio,
		BasePrice:  price,
		City:       r.City,
		EventType:  r.EventType,
		LookingFor: r.LookingFor,
		EventDate:  r.EventDate,
	}, ok
}

func coercePrice(raw json.RawMessage) (*float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, false
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, true
		}
	} else {
		text = string(raw)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}
