package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/logger"
	"arctic_mining/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// ReferralCommissionRate is the cut of a referee's harvest credited to
	// the referrer, independent of the referrer's own tier.
	ReferralCommissionRate = 0.05

	// MinWithdrawal is the smallest amount a player may withdraw.
	MinWithdrawal = 20.0
)

// EconomyService runs the per-request economic state machine: harvest,
// purchase and withdrawal. Every mutation goes through the store's Update
// closure so concurrent requests for the same account are serialized.
type EconomyService struct {
	store AccountStore
	vip   *VIPService
	now   func() time.Time
	log   *slog.Logger
}

func NewEconomyService(db *pgxpool.Pool) *EconomyService {
	store := repository.NewAccountRepository(db)
	return &EconomyService{
		store: store,
		vip:   NewVIPServiceWithStore(store),
		now:   time.Now,
		log:   logger.With("component", "economy"),
	}
}

func NewEconomyServiceWithStore(store AccountStore) *EconomyService {
	return &EconomyService{
		store: store,
		vip:   NewVIPServiceWithStore(store),
		now:   time.Now,
		log:   logger.With("component", "economy"),
	}
}

// SetClock overrides the time source, for tests.
func (s *EconomyService) SetClock(now func() time.Time) { s.now = now }

// HarvestResult reports what a successful harvest credited.
type HarvestResult struct {
	Gain       float64 `json:"gain"`
	Commission float64 `json:"commission,omitempty"`
}

// Harvest converts accrued yield into withdrawable balance. The referral
// commission is a second, independent account mutation persisted in its own
// transaction: a crash between the two writes can lose the commission, the
// player's own credit is never at risk.
func (s *EconomyService) Harvest(ctx context.Context, username string) (HarvestResult, error) {
	var res HarvestResult
	var referredBy string

	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		now := s.now()
		elapsed := now.Sub(a.AccrualStart())
		if elapsed < HarvestCooldown {
			return ErrCooldown
		}

		vip, err := s.vip.Evaluate(ctx, a.ReferralCode)
		if err != nil {
			return err
		}

		gain := AccruedGain(EffectiveDailyYield(a.Inventory, vip.VIPTier), elapsed)
		a.WithdrawalBalance += gain
		a.LastCollection = now
		a.AddHistory(domain.EventHarvest, gain, "Récolte Minage", now)

		res.Gain = gain
		referredBy = a.ReferredBy
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return res, ErrUserNotFound
		}
		return res, err
	}

	if referredBy != "" {
		commission := res.Gain * ReferralCommissionRate
		if err := s.creditReferrer(ctx, referredBy, username, commission); err != nil {
			// Dangling referral codes (deleted referrer) degrade to a no-op;
			// anything else is logged and swallowed so the harvester still
			// gets a success.
			if !errors.Is(err, repository.ErrNotFound) {
				s.log.Error("referral commission failed",
					"referrer_code", referredBy, "referee", username, "error", err)
			}
		} else {
			res.Commission = commission
		}
	}

	return res, nil
}

func (s *EconomyService) creditReferrer(ctx context.Context, code, refereeName string, commission float64) error {
	referrer, err := s.store.GetByReferralCode(ctx, code)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, referrer.Username, func(a *domain.Account) error {
		a.WithdrawalBalance += commission
		a.AddHistory(domain.EventReferral, commission, "Bonus affilié: "+refereeName, s.now())
		return nil
	})
}

// Purchase debits the product price and increments the inventory as one
// atomic pair. Insufficient funds is a decline, not an error.
func (s *EconomyService) Purchase(ctx context.Context, username, itemID string) (domain.Product, error) {
	product, ok := domain.Products[itemID]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}

	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		if a.Balance < product.Price {
			return ErrInsufficientFunds
		}
		a.Balance -= product.Price
		if a.Inventory == nil {
			a.Inventory = make(map[string]int)
		}
		a.Inventory[itemID]++
		a.AddHistory(domain.EventPurchase, -product.Price, "Achat : "+product.Name, s.now())
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return product, ErrUserNotFound
	}
	return product, err
}

// WithdrawResult reports the ledger and display sides of a withdrawal.
type WithdrawResult struct {
	Amount  float64 `json:"amount"`
	FeeRate float64 `json:"fee_rate"`
	NetSent float64 `json:"net_sent"`
}

// Withdraw debits the full requested amount from the withdrawal balance and
// reports the net amount after the tier fee. The ledger debits gross while
// the display shows net; that asymmetry is the documented behavior of the
// system and is preserved deliberately.
func (s *EconomyService) Withdraw(ctx context.Context, username string, amount float64, address string) (WithdrawResult, error) {
	var res WithdrawResult

	if amount < MinWithdrawal || math.IsNaN(amount) {
		return res, ErrBelowMinimum
	}

	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		if a.WithdrawalBalance < amount {
			return ErrInsufficientFunds
		}

		vip, err := s.vip.Evaluate(ctx, a.ReferralCode)
		if err != nil {
			return err
		}

		fee := amount * vip.FeeRate
		net := amount - fee
		a.WithdrawalBalance -= amount

		short := address
		if len(short) > 6 {
			short = short[:6]
		}
		short += "..."
		a.AddHistory(domain.EventWithdrawal, -amount,
			fmt.Sprintf("Retrait (Frais %.0f%%) -> %.2f envoyés via %s", vip.FeeRate*100, net, short),
			s.now())

		res = WithdrawResult{
			Amount:  amount,
			FeeRate: vip.FeeRate,
			NetSent: math.Round(net*100) / 100,
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return res, ErrUserNotFound
	}
	return res, err
}
