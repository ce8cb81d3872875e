package domain

import "testing"

func TestSelectTierThresholds(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
		{29, 4},
		{30, 5},
		{1000, 5},
	}

	for _, tc := range cases {
		if got := SelectTier(tc.count); got.Level != tc.want {
			t.Errorf("SelectTier(%d).Level = %d; want %d", tc.count, got.Level, tc.want)
		}
	}
}

func TestTiersMonotonic(t *testing.T) {
	for i := 1; i < len(VIPTiers); i++ {
		prev, cur := VIPTiers[i-1], VIPTiers[i]
		if cur.RequiredReferrals <= prev.RequiredReferrals {
			t.Fatalf("tier %d requirement not increasing", cur.Level)
		}
		if cur.FeeRate >= prev.FeeRate {
			t.Fatalf("tier %d fee not decreasing", cur.Level)
		}
		if cur.MiningBonus <= prev.MiningBonus {
			t.Fatalf("tier %d bonus not increasing", cur.Level)
		}
	}
}
