package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/core/domain"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

func TestActivityService_Process_AdvancesLastSeen(t *testing.T) {
	repo := newStubAccountRepo()
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.Insert(context.Background(), &domain.Account{
		Username: "alice12", CreatedAt: created, LastSeenAt: created, Role: domain.RoleUser,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	svc := NewActivityService(repo, zerolog.Nop())

	seen := created.Add(time.Hour)
	if err := svc.Process(context.Background(), ports.ActivityTouch{Username: "alice12", Timestamp: seen}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	account, _ := repo.FindByUsername(context.Background(), "alice12")
	if !account.LastSeenAt.Equal(seen) {
		t.Fatalf("last_seen_at = %v, want %v", account.LastSeenAt, seen)
	}
	if !account.CreatedAt.Equal(created) {
		t.Fatalf("created_at must stay immutable, got %v", account.CreatedAt)
	}
}

func TestActivityService_Process_OutOfOrderTouch(t *testing.T) {
	repo := newStubAccountRepo()
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.Insert(context.Background(), &domain.Account{
		Username: "alice12", CreatedAt: created, LastSeenAt: created.Add(2 * time.Hour), Role: domain.RoleUser,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	svc := NewActivityService(repo, zerolog.Nop())

	// An older touch must not move last_seen_at backwards.
	if err := svc.Process(context.Background(), ports.ActivityTouch{Username: "alice12", Timestamp: created.Add(time.Hour)}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	account, _ := repo.FindByUsername(context.Background(), "alice12")
	if !account.LastSeenAt.Equal(created.Add(2 * time.Hour)) {
		t.Fatalf("last_seen_at moved backwards to %v", account.LastSeenAt)
	}
}

func TestActivityService_Process_MissingAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewActivityService(repo, zerolog.Nop())

	// Touching a name that never completed registration is a silent no-op.
	if err := svc.Process(context.Background(), ports.ActivityTouch{Username: "ghost77", Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("missing account must not be an error, got %v", err)
	}
}

type failingTouchRepo struct {
	*stubAccountRepo
}

func (r *failingTouchRepo) TouchLastSeen(context.Context, string, time.Time) error {
	return errors.New("write pool exhausted")
}

func TestActivityService_Process_StoreFailure(t *testing.T) {
	repo := &failingTouchRepo{newStubAccountRepo()}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), ports.ActivityTouch{Username: "alice12", Timestamp: time.Now().UTC()}); err == nil {
		t.Fatalf("expected error on store failure")
	}
}
