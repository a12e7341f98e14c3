package auth

import (
	"sync"
	"time"

	"github.com/edusync/edusync/internal/common"
)

// ResetTicket binds a single-use password-reset token to the account it was
// issued for and the instant it stops being valid.
type ResetTicket struct {
	Email  string
	Expiry time.Time
}

// ResetTokenStore is a concurrency-safe registry of live reset tickets keyed
// by token string. Instances are created at startup and injected into the
// auth service; there is no package-level store.
//
// Expired tickets are dropped lazily on redemption and, when the app enables
// it, by a periodic Sweep.
type ResetTokenStore struct {
	mu      sync.Mutex
	tickets map[string]ResetTicket
}

// NewResetTokenStore returns an empty registry.
func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{tickets: make(map[string]ResetTicket)}
}

// Insert registers a new ticket. Tokens are never reused, so an already
// present token is rejected with common.ErrorAlreadyExists rather than
// silently overwritten.
func (s *ResetTokenStore) Insert(token string, email string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[token]; ok {
		return common.ErrorAlreadyExists
	}
	s.tickets[token] = ResetTicket{Email: email, Expiry: expiry}
	return nil
}

// TryGet returns the ticket for token without mutating the registry.
func (s *ResetTokenStore) TryGet(token string) (ResetTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[token]
	return t, ok
}

// Remove deletes the ticket for token and reports whether it was present.
// It is idempotent; under concurrent callers exactly one observes true.
func (s *ResetTokenStore) Remove(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.tickets[token]
	if ok {
		delete(s.tickets, token)
	}
	return ok
}

// Sweep drops every ticket whose expiry is at or before now and returns how
// many were removed.
func (s *ResetTokenStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, t := range s.tickets {
		if !t.Expiry.After(now) {
			delete(s.tickets, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live tickets.
func (s *ResetTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}
