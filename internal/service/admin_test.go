package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arctic_mining/internal/domain"
)

func TestAdminCreditTargets(t *testing.T) {
	cases := []struct {
		target    CreditTarget
		wantBal   float64
		wantWdr   float64
		wantKind  string
		wantEntry string
	}{
		{CreditBalance, 50, 0, domain.EventDeposit, "Dépôt validé (Admin)"},
		{CreditWithdrawal, 0, 50, domain.EventInfo, "Bonus Retrait (Admin)"},
		{CreditGift, 50, 0, domain.EventAdminGift, "Cadeau Admin"},
	}

	for _, tc := range cases {
		store := newFakeStore()
		seedAccount(store, "alice", "ALICE1", "", testEpoch)

		svc := NewAdminServiceWithStore(store)
		if err := svc.Credit(context.Background(), "alice", 50, tc.target); err != nil {
			t.Fatalf("%s: %v", tc.target, err)
		}

		got := store.get("alice")
		if got.Balance != tc.wantBal || got.WithdrawalBalance != tc.wantWdr {
			t.Fatalf("%s: balances = %v/%v; want %v/%v",
				tc.target, got.Balance, got.WithdrawalBalance, tc.wantBal, tc.wantWdr)
		}
		if len(got.History) != 1 || got.History[0].Kind != tc.wantKind || got.History[0].Description != tc.wantEntry {
			t.Fatalf("%s: history = %+v", tc.target, got.History)
		}
	}
}

func TestAdminCreditUnknownUser(t *testing.T) {
	svc := NewAdminServiceWithStore(newFakeStore())
	err := svc.Credit(context.Background(), "ghost", 10, CreditBalance)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminBanDeletes(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "cheater", "CHEAT1", "", testEpoch)

	svc := NewAdminServiceWithStore(store)
	if err := svc.Ban(context.Background(), "cheater"); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if _, err := store.GetByUsername(context.Background(), "cheater"); err == nil {
		t.Fatalf("account still present after ban")
	}
	if err := svc.Ban(context.Background(), "cheater"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second ban should be not-found, got %v", err)
	}
}

func TestAdminListAccountsDerivesVIP(t *testing.T) {
	store := newFakeStore()
	a := seedAccount(store, "owner", "OWNER1", "", testEpoch)
	a.Deposits = []domain.DepositClaim{{ID: "d1", Amount: 10, Status: domain.DepositPending}}
	seedAccount(store, "fan1", "FAN001", "OWNER1", testEpoch)
	seedAccount(store, "fan2", "FAN002", "OWNER1", testEpoch)

	svc := NewAdminServiceWithStore(store)
	views, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("views = %d; want 3", len(views))
	}
	for _, v := range views {
		if v.Deposits == nil {
			t.Fatalf("%s: deposits must serialize as [], not null", v.Username)
		}
		if v.Username == "owner" {
			if v.VIPLevel != 2 {
				t.Fatalf("owner vip = %d; want 2", v.VIPLevel)
			}
			if len(v.Deposits) != 1 {
				t.Fatalf("owner deposits = %+v", v.Deposits)
			}
		}
	}
}

func TestBanLeavesRefereesIntact(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "referrer", "REF123", "", testEpoch)
	referee := seedAccount(store, "referee", "OTHER1", "REF123", testEpoch)
	referee.Inventory["miner_v1"] = 1

	svc := NewAdminServiceWithStore(store)
	if err := svc.Ban(context.Background(), "referrer"); err != nil {
		t.Fatalf("ban: %v", err)
	}

	// the referee's dangling referredBy degrades the commission to a no-op
	econ := newTestEconomy(store, testEpoch.Add(time.Hour))
	res, err := econ.Harvest(context.Background(), "referee")
	if err != nil {
		t.Fatalf("harvest after referrer ban: %v", err)
	}
	if res.Commission != 0 {
		t.Fatalf("commission went nowhere but was reported: %v", res.Commission)
	}
}
