package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/core/domain"
)

// sortedStubRepo layers username ordering on top of stubAccountRepo, the way
// the real store's ORDER BY does.
type sortedStubRepo struct {
	*stubAccountRepo
	listErr error
}

func (r *sortedStubRepo) ListPage(ctx context.Context, limit int) ([]domain.Account, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	accounts, err := r.stubAccountRepo.ListPage(ctx, len(r.accounts))
	if err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Username < accounts[j].Username })
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func seed(t *testing.T, repo *stubAccountRepo, usernames ...string) {
	t.Helper()
	for _, name := range usernames {
		if err := repo.Insert(context.Background(), domain.NewAccount(name, domain.RoleUser, time.Now().UTC())); err != nil {
			t.Fatalf("seed %q: %v", name, err)
		}
	}
}

func TestListingService_List_Ordered(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo()}
	seed(t, repo.stubAccountRepo, "zeta1", "alpha1", "mid1")
	svc := NewListingService(repo, 32, zerolog.Nop())

	accounts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	got := make([]string, len(accounts))
	for i, a := range accounts {
		got[i] = a.Username
	}
	want := []string{"alpha1", "mid1", "zeta1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func TestListingService_List_Empty(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo()}
	svc := NewListingService(repo, 32, zerolog.Nop())

	accounts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("empty store must not be an error: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Fatalf("expected empty slice, got %#v", accounts)
	}
}

func TestListingService_List_CappedAtPageSize(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo()}
	for i := 0; i < 40; i++ {
		seed(t, repo.stubAccountRepo, fmt.Sprintf("user_%02d", i))
	}
	svc := NewListingService(repo, 32, zerolog.Nop())

	accounts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(accounts) != 32 {
		t.Fatalf("expected 32 accounts, got %d", len(accounts))
	}
	if accounts[0].Username != "user_00" {
		t.Fatalf("expected the first page, got first entry %s", accounts[0].Username)
	}
}

func TestListingService_List_StoreFailure(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo(), listErr: errors.New("timeout")}
	svc := NewListingService(repo, 32, zerolog.Nop())

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected error on store failure")
	}
}

func TestListingService_Lookup(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo()}
	seed(t, repo.stubAccountRepo, "alice12")
	svc := NewListingService(repo, 32, zerolog.Nop())

	account, err := svc.Lookup(context.Background(), "alice12")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if account.Username != "alice12" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.Lookup(context.Background(), "ghost77"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("Lookup missing = %v, want ErrAccountNotFound", err)
	}
}

func TestListingService_RoundTrip(t *testing.T) {
	repo := &sortedStubRepo{stubAccountRepo: newStubAccountRepo()}
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	want := &domain.Account{Username: "round_1", CreatedAt: created, LastSeenAt: created, Role: domain.RoleUser}
	if err := repo.Insert(context.Background(), want); err != nil {
		t.Fatalf("insert: %v", err)
	}
	svc := NewListingService(repo, 32, zerolog.Nop())

	got, err := svc.Lookup(context.Background(), "round_1")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got.Username != want.Username || !got.CreatedAt.Equal(want.CreatedAt) ||
		!got.LastSeenAt.Equal(want.LastSeenAt) || got.Role != want.Role {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
