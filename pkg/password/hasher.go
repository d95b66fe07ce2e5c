// Package password wraps bcrypt hashing of user passwords.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 10

type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: DefaultCost}
}

// NewHasherWithCost is meant for tests, where bcrypt.MinCost keeps runs fast.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether password matches hash. A malformed hash never matches.
func (h *Hasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
