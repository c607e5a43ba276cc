package auth

import (
	"fmt"

	"github.com/desertthunder/campus/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the app has always used for stored hashes.
const DefaultCost = 10

// Hasher derives and verifies salted bcrypt password hashes.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher with the given bcrypt cost. A zero cost selects [DefaultCost].
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d out of range", shared.ErrInvalidConfig, cost)
	}

	// Compared against when an email is unknown, so that path costs a full verification too.
	dummy, err := bcrypt.GenerateFromPassword([]byte("campus-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrHashing, err)
	}

	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Hash returns a bcrypt hash of password with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrHashing, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. Malformed hashes never match.
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// burn performs a verification whose result is discarded.
func (h *Hasher) burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
