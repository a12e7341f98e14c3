package auth

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edusync/edusync/internal/common"
)

func TestResetTokenStore_InsertDuplicate(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	expiry := time.Now().Add(time.Hour)

	if err := s.Insert("tok", "a@b.com", expiry); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	err := s.Insert("tok", "c@d.com", expiry)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}

	// the original entry must be untouched
	ticket, ok := s.TryGet("tok")
	if !ok || ticket.Email != "a@b.com" {
		t.Fatalf("original ticket was overwritten: %+v", ticket)
	}
}

func TestResetTokenStore_TryGetAbsent(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	if _, ok := s.TryGet("nope"); ok {
		t.Fatalf("expected absent")
	}
}

func TestResetTokenStore_RemoveIdempotent(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	if err := s.Insert("tok", "a@b.com", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	if !s.Remove("tok") {
		t.Fatalf("expected first Remove to report presence")
	}
	if s.Remove("tok") {
		t.Fatalf("expected second Remove to report absence")
	}
}

func TestResetTokenStore_Sweep(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	now := time.Now()

	s.Insert("expired1", "a@b.com", now.Add(-time.Minute))
	s.Insert("expired2", "c@d.com", now)
	s.Insert("live", "e@f.com", now.Add(time.Hour))

	if got := s.Sweep(now); got != 2 {
		t.Fatalf("Sweep removed %d, want 2", got)
	}
	if _, ok := s.TryGet("live"); !ok {
		t.Fatalf("live ticket swept")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestResetTokenStore_ConcurrentRemove_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	const workers = 64

	for round := 0; round < 50; round++ {
		token := fmt.Sprintf("tok-%d", round)
		if err := s.Insert(token, "a@b.com", time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("Insert error: %v", err)
		}

		var wins int64
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.Remove(token) {
					atomic.AddInt64(&wins, 1)
				}
			}()
		}
		wg.Wait()

		if wins != 1 {
			t.Fatalf("round %d: %d winners, want exactly 1", round, wins)
		}
	}
}

func TestResetTokenStore_ConcurrentMixedOps(t *testing.T) {
	t.Parallel()

	s := NewResetTokenStore()
	expiry := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("tok-%d", n)
			_ = s.Insert(token, "x@y.com", expiry)
			if ticket, ok := s.TryGet(token); ok && ticket.Email != "x@y.com" {
				t.Errorf("torn read: %+v", ticket)
			}
			s.Remove(token)
		}(i)
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Fatalf("expected empty store, Len = %d", s.Len())
	}
}
