package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arctic_mining/internal/domain"
)

func newTestDeposits(store *fakeStore, now time.Time) *DepositService {
	s := NewDepositServiceWithStore(store, nil)
	s.SetClock(func() time.Time { return now })
	return s
}

func TestDepositSubmitCreatesPendingClaim(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "alice", "ALICE1", "", testEpoch)

	svc := newTestDeposits(store, testEpoch)
	claim, err := svc.Submit(context.Background(), "alice", 75, "0xdeadbeef")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if claim.ID == "" || claim.Status != domain.DepositPending {
		t.Fatalf("unexpected claim: %+v", claim)
	}

	got := store.get("alice")
	if len(got.Deposits) != 1 || got.Deposits[0].Status != domain.DepositPending {
		t.Fatalf("claim not persisted as pending: %+v", got.Deposits)
	}
	if got.Balance != 0 {
		t.Fatalf("submitting a claim must not credit the balance")
	}
}

func TestDepositApproveCreditsOnce(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "alice", "ALICE1", "", testEpoch)

	svc := newTestDeposits(store, testEpoch)
	claim, err := svc.Submit(context.Background(), "alice", 75, "0xdeadbeef")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Review(context.Background(), "alice", claim.ID, DepositApprove); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got := store.get("alice")
	if got.Balance != 75 {
		t.Fatalf("balance = %v; want 75", got.Balance)
	}
	if got.Deposits[0].Status != domain.DepositApproved {
		t.Fatalf("status = %v; want approved", got.Deposits[0].Status)
	}
	if len(got.History) != 1 || got.History[0].Kind != "depot" {
		t.Fatalf("expected depot history entry, got %+v", got.History)
	}

	// second approval attempt must be declined with zero balance change
	err = svc.Review(context.Background(), "alice", claim.ID, DepositApprove)
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	if got := store.get("alice"); got.Balance != 75 {
		t.Fatalf("double approval credited twice: %v", got.Balance)
	}
}

func TestDepositRejectLeavesBalance(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "alice", "ALICE1", "", testEpoch)

	svc := newTestDeposits(store, testEpoch)
	claim, _ := svc.Submit(context.Background(), "alice", 75, "0xdeadbeef")

	if err := svc.Review(context.Background(), "alice", claim.ID, DepositReject); err != nil {
		t.Fatalf("reject: %v", err)
	}

	got := store.get("alice")
	if got.Balance != 0 {
		t.Fatalf("reject must not credit: %v", got.Balance)
	}
	if got.Deposits[0].Status != domain.DepositRejected {
		t.Fatalf("status = %v; want rejected", got.Deposits[0].Status)
	}

	// a rejected claim cannot be approved later
	err := svc.Review(context.Background(), "alice", claim.ID, DepositApprove)
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestDepositReviewUnknownClaim(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "alice", "ALICE1", "", testEpoch)

	svc := newTestDeposits(store, testEpoch)
	err := svc.Review(context.Background(), "alice", "nope", DepositApprove)
	if !errors.Is(err, ErrDepositNotFound) {
		t.Fatalf("expected ErrDepositNotFound, got %v", err)
	}
}

func TestDepositReviewUnknownUser(t *testing.T) {
	svc := newTestDeposits(newFakeStore(), testEpoch)
	err := svc.Review(context.Background(), "ghost", "id", DepositApprove)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
