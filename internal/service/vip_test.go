package service

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestVIPEvaluateFromLiveCount(t *testing.T) {
	cases := []struct {
		referees  int
		wantLevel int
		wantFee   float64
		wantBonus float64
	}{
		{0, 1, 0.10, 1.00},
		{1, 1, 0.10, 1.00},
		{2, 2, 0.08, 1.05},
		{5, 3, 0.06, 1.10},
		{10, 4, 0.05, 1.20},
		{29, 4, 0.05, 1.20}, // strict threshold, not rounded up
		{30, 5, 0.03, 1.50},
		{100, 5, 0.03, 1.50},
	}

	for _, tc := range cases {
		store := newFakeStore()
		seedAccount(store, "owner", "OWNER1", "", time.Now())
		for i := 0; i < tc.referees; i++ {
			seedAccount(store, fmt.Sprintf("ref%d", i), fmt.Sprintf("CODE%02d", i), "OWNER1", time.Now())
		}

		vip := NewVIPServiceWithStore(store)
		status, err := vip.Evaluate(context.Background(), "OWNER1")
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if status.Level != tc.wantLevel {
			t.Errorf("%d referees: level = %d; want %d", tc.referees, status.Level, tc.wantLevel)
		}
		if status.FeeRate != tc.wantFee {
			t.Errorf("%d referees: fee = %v; want %v", tc.referees, status.FeeRate, tc.wantFee)
		}
		if status.MiningBonus != tc.wantBonus {
			t.Errorf("%d referees: bonus = %v; want %v", tc.referees, status.MiningBonus, tc.wantBonus)
		}
		if status.ReferralCount != tc.referees {
			t.Errorf("count = %d; want %d", status.ReferralCount, tc.referees)
		}
	}
}
