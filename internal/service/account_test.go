package service

import (
	"context"
	"errors"
	"testing"

	"arctic_mining/internal/domain"
)

func TestRegisterCreatesAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountServiceWithStore(store)

	a, err := svc.Register(context.Background(), "alice", "s3cret", "FRIEND")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if a.PasswordHash == "" || a.PasswordHash == "s3cret" {
		t.Fatalf("password must be stored hashed, got %q", a.PasswordHash)
	}
	if len(a.ReferralCode) != 6 {
		t.Fatalf("referral code = %q; want 6 chars", a.ReferralCode)
	}
	if a.ReferredBy != "FRIEND" {
		t.Fatalf("referredBy = %q", a.ReferredBy)
	}
	if len(a.History) != 1 || a.History[0].Kind != domain.EventInfo {
		t.Fatalf("expected welcome history entry, got %+v", a.History)
	}
	if a.Balance != 0 || a.WithdrawalBalance != 0 {
		t.Fatalf("new accounts start at zero")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountServiceWithStore(store)

	if _, err := svc.Register(context.Background(), "alice", "pw", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "pw2", "")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginVerifiesHash(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountServiceWithStore(store)

	if _, err := svc.Register(context.Background(), "alice", "s3cret", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("login with correct password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
}

func TestProfileAggregatesReferralEarnings(t *testing.T) {
	store := newFakeStore()
	owner := seedAccount(store, "owner", "OWNER1", "", testEpoch)
	seedAccount(store, "bob", "BOB111", "OWNER1", testEpoch)
	seedAccount(store, "carol", "CAROL1", "OWNER1", testEpoch)

	owner.Inventory["miner_v1"] = 2
	owner.AddHistory(domain.EventReferral, 1.5, "Bonus affilié: bob", testEpoch)
	owner.AddHistory(domain.EventReferral, 0.5, "Bonus affilié: bob", testEpoch)
	owner.AddHistory(domain.EventReferral, 3, "Bonus affilié: carol", testEpoch)

	svc := NewAccountServiceWithStore(store)
	p, err := svc.GetProfile(context.Background(), "owner")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}

	// 2 referees -> tier 2 bonus 1.05 on 10/day
	if !almostEqual(p.TotalDaily, 10*1.05) {
		t.Fatalf("totalDaily = %v; want 10.5", p.TotalDaily)
	}
	if p.VIPStatus.Level != 2 {
		t.Fatalf("vip level = %d; want 2", p.VIPStatus.Level)
	}

	earnings := map[string]float64{}
	for _, r := range p.Referrals {
		earnings[r.Username] = r.Earnings
	}
	if earnings["bob"] != 2 || earnings["carol"] != 3 {
		t.Fatalf("referral earnings = %v", earnings)
	}
}

func TestRankingDerivesVIP(t *testing.T) {
	store := newFakeStore()
	a := seedAccount(store, "rich", "RICH01", "", testEpoch)
	a.Balance = 900
	seedAccount(store, "fan1", "FAN001", "RICH01", testEpoch)
	seedAccount(store, "fan2", "FAN002", "RICH01", testEpoch)

	svc := NewAccountServiceWithStore(store)
	entries, err := svc.Ranking(context.Background())
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d; want 3", len(entries))
	}
	for _, e := range entries {
		if e.Username == "rich" && e.VIPLevel != 2 {
			t.Fatalf("rich should be tier 2, got %d", e.VIPLevel)
		}
	}
}

func TestUpdateAvatar(t *testing.T) {
	store := newFakeStore()
	seedAccount(store, "alice", "ALICE1", "", testEpoch)

	svc := NewAccountServiceWithStore(store)
	if err := svc.UpdateAvatar(context.Background(), "alice", "https://cdn/x.png"); err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if got := store.get("alice"); got.Avatar != "https://cdn/x.png" {
		t.Fatalf("avatar = %q", got.Avatar)
	}

	if err := svc.UpdateAvatar(context.Background(), "ghost", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGenerateReferralCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateReferralCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, r := range code {
			if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				t.Fatalf("code %q has invalid char %q", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 40 {
		t.Fatalf("codes look non-random: %d unique of 50", len(seen))
	}
}
