package domain

// ProfileUpdate is a partial update submitted by an authenticated user.
// A nil or empty field means "not supplied".
type ProfileUpdate struct {
	Phone     *string
	AvatarURL *string

	Category  *string
	Bio       *string
	BasePrice *float64

	EventType  *string
	LookingFor *string
	EventDate  *string

	// City belongs to whichever profile Plan routes it to.
	City *string
}

// UserChanges are the columns written on the user record.
type UserChanges struct {
	Phone     *string
	AvatarURL *string
}

// ProviderChanges are merged into the provider profile. On insert a nil
// Category becomes DefaultCategory.
type ProviderChanges struct {
	Category  *string
	Bio       *string
	City      *string
	BasePrice *float64
}

// ClientChanges are merged into the client profile.
type ClientChanges struct {
	EventType  *string
	LookingFor *string
	City       *string
	EventDate  *string
}

// ProfilePlan lists the writes a profile update performs. A nil member
// means that write is skipped. All non-nil writes are applied atomically.
type ProfilePlan struct {
	User     *UserChanges
	Provider *ProviderChanges
	Client   *ClientChanges
}

// Empty reports whether the plan performs no write at all.
func (p ProfilePlan) Empty() bool {
	return p.User == nil && p.Provider == nil && p.Client == nil
}

// Plan decides which records u touches.
//
// WARNING: city is ambiguous. It goes to the client profile when eventType is
// also supplied and to the provider profile otherwise, so a request carrying
// only {city} updates (or creates) a provider profile, whatever the caller's
// role. Clients must send eventType together with city.
func (u ProfileUpdate) Plan() ProfilePlan {
	var plan ProfilePlan

	phone, avatar := present(u.Phone), present(u.AvatarURL)
	if phone != nil || avatar != nil {
		plan.User = &UserChanges{Phone: phone, AvatarURL: avatar}
	}

	eventType := present(u.EventType)
	city := present(u.City)

	var providerCity, clientCity *string
	if eventType != nil {
		clientCity = city
	} else {
		providerCity = city
	}

	category, bio := present(u.Category), present(u.Bio)
	price := u.BasePrice
	if price != nil && *price == 0 {
		price = nil
	}
	if category != nil || bio != nil || price != nil || providerCity != nil {
		plan.Provider = &ProviderChanges{
			Category:  category,
			Bio:       bio,
			City:      providerCity,
			BasePrice: price,
		}
	}

	lookingFor, eventDate := present(u.LookingFor), present(u.EventDate)
	if eventType != nil || lookingFor != nil || eventDate != nil || clientCity != nil {
		plan.Client = &ClientChanges{
			EventType:  eventType,
			LookingFor: lookingFor,
			City:       clientCity,
			EventDate:  eventDate,
		}
	}

	return plan
}

// present treats empty strings the same as missing ones.
func present(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
