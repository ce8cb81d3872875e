package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestAddHistoryBoundedNewestFirst(t *testing.T) {
	var a Account
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 35; i++ {
		a.AddHistory(EventInfo, float64(i), fmt.Sprintf("event %d", i), base.Add(time.Duration(i)*time.Second))
	}

	if len(a.History) != HistoryCap {
		t.Fatalf("history length = %d; want %d", len(a.History), HistoryCap)
	}

	// newest first: entry 34 at the front, then 33, ...
	for i, h := range a.History {
		want := float64(34 - i)
		if h.Amount != want {
			t.Fatalf("history[%d].Amount = %v; want %v", i, h.Amount, want)
		}
	}
}

func TestAddHistoryBelowCap(t *testing.T) {
	var a Account
	now := time.Now()
	a.AddHistory(EventHarvest, 1, "first", now)
	a.AddHistory(EventPurchase, -2, "second", now)

	if len(a.History) != 2 {
		t.Fatalf("history length = %d; want 2", len(a.History))
	}
	if a.History[0].Kind != EventPurchase || a.History[1].Kind != EventHarvest {
		t.Fatalf("not newest-first: %+v", a.History)
	}
}

func TestFindDeposit(t *testing.T) {
	a := Account{Deposits: []DepositClaim{
		{ID: "d1", Status: DepositPending},
		{ID: "d2", Status: DepositApproved},
	}}

	if d := a.FindDeposit("d2"); d == nil || d.Status != DepositApproved {
		t.Fatalf("FindDeposit(d2) = %+v", d)
	}
	if d := a.FindDeposit("d3"); d != nil {
		t.Fatalf("FindDeposit(d3) should be nil, got %+v", d)
	}

	// the returned pointer aliases the slice so status transitions stick
	a.FindDeposit("d1").Status = DepositRejected
	if a.Deposits[0].Status != DepositRejected {
		t.Fatalf("mutation through FindDeposit pointer did not stick")
	}
}

func TestAccrualStart(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	harvested := created.Add(48 * time.Hour)

	a := Account{CreatedAt: created}
	if got := a.AccrualStart(); !got.Equal(created) {
		t.Fatalf("never-harvested account should start at createdAt, got %v", got)
	}

	a.LastCollection = harvested
	if got := a.AccrualStart(); !got.Equal(harvested) {
		t.Fatalf("harvested account should start at lastCollection, got %v", got)
	}
}
