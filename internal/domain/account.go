package domain

import "time"

// HistoryCap is the maximum number of economic events kept per account.
const HistoryCap = 20

// History event kinds. Names follow the original game wording and are part
// of the stored data format, so they stay as-is.
const (
	EventInfo       = "info"
	EventPurchase   = "achat"
	EventHarvest    = "recolte"
	EventReferral   = "parrainage"
	EventWithdrawal = "retrait"
	EventDeposit    = "depot"
	EventAdminGift  = "triche"
)

// DepositStatus represents deposit claim processing status
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
	DepositRejected DepositStatus = "rejected"
)

// HistoryEvent is one economic event in an account's bounded history.
type HistoryEvent struct {
	Kind        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"desc"`
	Date        time.Time `json:"date"`
}

// DepositClaim is a player-asserted external payment awaiting operator review.
type DepositClaim struct {
	ID     string        `json:"id"`
	Amount float64       `json:"amount"`
	TxID   string        `json:"tx_id"`
	Status DepositStatus `json:"status"`
	Date   time.Time     `json:"date"`
}

// Account is the persisted player record. It is read and written as a whole
// document; the repository serializes concurrent mutations per username.
type Account struct {
	Username          string         `json:"username"`
	PasswordHash      string         `json:"-"`
	Balance           float64        `json:"balance"`
	WithdrawalBalance float64        `json:"withdrawal_balance"`
	ReferralCode      string         `json:"referral_code"`
	ReferredBy        string         `json:"referred_by,omitempty"`
	Avatar            string         `json:"avatar,omitempty"`
	Email             string         `json:"email,omitempty"`
	Inventory         map[string]int `json:"inventory"`
	History           []HistoryEvent `json:"history"`
	Deposits          []DepositClaim `json:"deposits"`
	LastCollection    time.Time      `json:"last_collection"`
	CreatedAt         time.Time      `json:"created_at"`
}

// AddHistory front-inserts an event and evicts the oldest entry beyond
// HistoryCap, keeping the list newest-first.
func (a *Account) AddHistory(kind string, amount float64, desc string, at time.Time) {
	e := HistoryEvent{Kind: kind, Amount: amount, Description: desc, Date: at}
	if len(a.History) < HistoryCap {
		a.History = append([]HistoryEvent{e}, a.History...)
		return
	}
	copy(a.History[1:], a.History[:HistoryCap-1])
	a.History[0] = e
}

// FindDeposit returns a pointer into the deposits slice, or nil.
func (a *Account) FindDeposit(id string) *DepositClaim {
	for i := range a.Deposits {
		if a.Deposits[i].ID == id {
			return &a.Deposits[i]
		}
	}
	return nil
}

// AccrualStart is the start of the current accrual window: the last harvest
// if one ever happened, account creation otherwise.
func (a *Account) AccrualStart() time.Time {
	if a.LastCollection.IsZero() {
		return a.CreatedAt
	}
	if a.LastCollection.Before(a.CreatedAt) {
		return a.CreatedAt
	}
	return a.LastCollection
}
