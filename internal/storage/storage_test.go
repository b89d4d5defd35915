package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/PeterLuschny/FigurativePartitions/internal/calculator"
	"github.com/PeterLuschny/FigurativePartitions/internal/puzzle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCreateStartsIndependentSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	a, err := store.Create(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Create(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %s twice", a.ID)
	}

	if err := store.Update(a.ID, func(c *puzzle.Collection) {
		c.Add(calculator.Square)
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var lenA, lenB, targetB int
	_ = store.View(a.ID, func(c *puzzle.Collection) { lenA = c.Len() })
	_ = store.View(b.ID, func(c *puzzle.Collection) {
		lenB = c.Len()
		targetB = c.Target()
	})
	if lenA != 1 || lenB != 0 {
		t.Fatalf("sessions are not independent: %d %d", lenA, lenB)
	}
	if targetB != 20 {
		t.Fatalf("expected target 20, got %d", targetB)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}
}

func TestCreateRejectsInvalidTarget(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	for _, target := range []int{0, -4} {
		if _, err := store.Create(target); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("expected ErrInvalidTarget for %d, got %v", target, err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestCreateUsesClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	store := NewMemoryStore(WithClock(func() time.Time { return now }))

	session, err := store.Create(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.CreatedAt.Equal(now) {
		t.Fatalf("expected %s, got %s", now, session.CreatedAt)
	}
}

func TestSessionLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithMaxSessions(2))
	first, _ := store.Create(1)
	if _, err := store.Create(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Create(1); !errors.Is(err, ErrSessionLimit) {
		t.Fatalf("expected ErrSessionLimit, got %v", err)
	}

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Create(1); err != nil {
		t.Fatalf("expected room after delete, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	called := false
	fn := func(*puzzle.Collection) { called = true }

	if err := store.View("missing", fn); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Update("missing", fn); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run for a missing session")
	}
}

func TestWithMaxSessionsIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithMaxSessions(0))
	if store.maxSessions != DefaultMaxSessions {
		t.Fatalf("expected default limit, got %d", store.maxSessions)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	session, err := store.Create(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var square puzzle.Figure
	_ = store.Update(session.ID, func(c *puzzle.Collection) {
		square, _ = c.Add(calculator.Square)
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			if err := store.Update(session.ID, func(c *puzzle.Collection) {
				c.Increment(square.ID)
			}); err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()

		go func() {
			defer wg.Done()
			if err := store.View(session.ID, func(c *puzzle.Collection) {
				_ = c.Snapshot()
			}); err != nil {
				t.Errorf("View failed: %v", err)
			}
		}()
	}

	wg.Wait()

	var fig puzzle.Figure
	_ = store.View(session.ID, func(c *puzzle.Collection) {
		fig, _ = c.Figure(square.ID)
	})
	if fig.Size != 33 || fig.Value != 33*33 {
		t.Fatalf("expected size 33 value 1089, got %+v", fig)
	}
}

func TestGetReturnsSessionMetadata(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	created, err := store.Create(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}
	if _, err := store.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
