package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side state behind a web cookie. UserID 0 means
// nobody is logged in.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func New(ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns the pending flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
