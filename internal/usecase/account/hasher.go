package account

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type Hasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches digest. An empty digest is
	// compared against a throwaway hash so that unknown usernames cost the
	// same as wrong passwords.
	Compare(digest, password string) bool
}

// BcryptHasher stores bcrypt digests of the base64 SHA-256 of the password,
// so passwords longer than bcrypt's 72 byte limit hash in full.
type BcryptHasher struct {
	cost int

	once  sync.Once
	dummy []byte
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(digest, password string) bool {
	if digest == "" {
		h.once.Do(func() {
			h.dummy, _ = bcrypt.GenerateFromPassword(prehash("not-a-real-password"), h.cost)
		})
		_ = bcrypt.CompareHashAndPassword(h.dummy, prehash(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), prehash(password)) == nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
