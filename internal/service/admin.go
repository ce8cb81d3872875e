package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/logger"
	"arctic_mining/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreditTarget selects which balance an operator credit lands on.
type CreditTarget string

const (
	// CreditBalance credits the spendable balance, recorded as a validated
	// deposit.
	CreditBalance CreditTarget = "add-buy"
	// CreditWithdrawal credits the withdrawable balance.
	CreditWithdrawal CreditTarget = "add-wdr"
	// CreditGift credits the spendable balance as a plain admin gift.
	CreditGift CreditTarget = "gift"
)

// AdminService implements the operator surface: account listing with derived
// VIP info, direct credits, and the irreversible ban. Callers are trusted;
// access control happens at the transport layer against the admin key.
type AdminService struct {
	store AccountStore
	vip   *VIPService
	now   func() time.Time
	log   *slog.Logger
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return NewAdminServiceWithStore(repository.NewAccountRepository(db))
}

func NewAdminServiceWithStore(store AccountStore) *AdminService {
	return &AdminService{
		store: store,
		vip:   NewVIPServiceWithStore(store),
		now:   time.Now,
		log:   logger.With("component", "admin"),
	}
}

// AdminAccountView is one account as shown in the operator panel. It exposes
// more than the player surface, including pending deposits.
type AdminAccountView struct {
	Username          string                `json:"username"`
	Balance           float64               `json:"balance"`
	WithdrawalBalance float64               `json:"withdrawal_balance"`
	VIPLevel          int                   `json:"vip"`
	ReferredBy        string                `json:"referred_by,omitempty"`
	Deposits          []domain.DepositClaim `json:"deposits"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ListAccounts returns every account with its derived VIP level, newest
// first.
func (s *AdminService) ListAccounts(ctx context.Context) ([]AdminAccountView, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AdminAccountView, 0, len(accounts))
	for _, a := range accounts {
		vip, err := s.vip.Evaluate(ctx, a.ReferralCode)
		if err != nil {
			return nil, err
		}
		deposits := a.Deposits
		if deposits == nil {
			deposits = []domain.DepositClaim{}
		}
		views = append(views, AdminAccountView{
			Username:          a.Username,
			Balance:           a.Balance,
			WithdrawalBalance: a.WithdrawalBalance,
			VIPLevel:          vip.Level,
			ReferredBy:        a.ReferredBy,
			Deposits:          deposits,
			CreatedAt:         a.CreatedAt,
		})
	}
	return views, nil
}

// Credit adds money directly to an account, bypassing player constraints.
func (s *AdminService) Credit(ctx context.Context, username string, amount float64, target CreditTarget) error {
	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		now := s.now()
		switch target {
		case CreditBalance:
			a.Balance += amount
			a.AddHistory(domain.EventDeposit, amount, "Dépôt validé (Admin)", now)
		case CreditWithdrawal:
			a.WithdrawalBalance += amount
			a.AddHistory(domain.EventInfo, amount, "Bonus Retrait (Admin)", now)
		case CreditGift:
			a.Balance += amount
			a.AddHistory(domain.EventAdminGift, amount, "Cadeau Admin", now)
		default:
			return fmt.Errorf("unknown credit target %q", target)
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		s.log.Info("admin credit", "user", username, "amount", amount, "target", string(target))
	}
	return err
}

// Ban deletes the account outright. No recovery path.
func (s *AdminService) Ban(ctx context.Context, username string) error {
	err := s.store.Delete(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		s.log.Warn("account banned", "user", username)
	}
	return err
}
