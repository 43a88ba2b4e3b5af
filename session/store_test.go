package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, "as")
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "curl/8.0", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected non-empty session id")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.UserID != "user-1" || got.UserAgent != "curl/8.0" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.ExpiresAt.After(time.Now()) {
		t.Fatal("expected future expiry")
	}

	if _, err := store.Get(ctx, "missing-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetExpiredSessionIsGone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Wall clock past the stored expiry; the Redis TTL has not fired yet.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}

	sessions, err := store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty list after lazy delete, got %d", len(sessions))
	}
}

func TestExtendExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newExpiry := time.Now().Add(48 * time.Hour)
	if err := store.ExtendExpiry(ctx, sess.ID, newExpiry); err != nil {
		t.Fatalf("ExtendExpiry error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !got.ExpiresAt.Equal(newExpiry) {
		t.Fatalf("expected expiry %v, got %v", newExpiry, got.ExpiresAt)
	}

	if err := store.ExtendExpiry(ctx, "missing-id", newExpiry); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("second Delete must be a no-op success, got %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteOwned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := store.DeleteOwned(ctx, "user-2", sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("session must survive foreign delete attempt: %v", err)
	}

	if err := store.DeleteOwned(ctx, "user-1", sess.ID); err != nil {
		t.Fatalf("DeleteOwned error: %v", err)
	}
	if err := store.DeleteOwned(ctx, "user-1", sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing session, got %v", err)
	}
}

func TestListActiveNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	var ids []string
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		store.now = func() time.Time { return base.Add(offset) }
		sess, err := store.Create(ctx, "user-1", "", time.Hour)
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		ids = append(ids, sess.ID)
	}
	store.now = func() time.Time { return base.Add(3 * time.Minute) }

	sessions, err := store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if sessions[i].ID != want {
			t.Fatalf("expected newest-first ordering, got %v", sessions)
		}
	}
}

func TestDeleteAllForUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, "user-1", "", time.Hour); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	other, err := store.Create(ctx, "user-2", "", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := store.DeleteAllForUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteAllForUser error: %v", err)
	}

	sessions, err := store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions left, got %d", len(sessions))
	}

	if _, err := store.Get(ctx, other.ID); err != nil {
		t.Fatalf("other user's session must survive: %v", err)
	}
}
