package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/logger"
	"arctic_mining/internal/notify"
	"arctic_mining/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DepositAction is an operator decision on a pending claim.
type DepositAction string

const (
	DepositApprove DepositAction = "approve"
	DepositReject  DepositAction = "reject"
)

// DepositService handles the deposit-claim lifecycle: player-submitted
// pending claims, operator approval moving money into the spendable balance,
// and operator rejection.
type DepositService struct {
	store    AccountStore
	notifier notify.Notifier
	now      func() time.Time
	log      *slog.Logger
}

func NewDepositService(db *pgxpool.Pool, notifier notify.Notifier) *DepositService {
	return NewDepositServiceWithStore(repository.NewAccountRepository(db), notifier)
}

func NewDepositServiceWithStore(store AccountStore, notifier notify.Notifier) *DepositService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &DepositService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		log:      logger.With("component", "deposits"),
	}
}

// SetClock overrides the time source, for tests.
func (s *DepositService) SetClock(now func() time.Time) { s.now = now }

// Submit records a pending claim. No balance changes until an operator
// approves it. The notification is fire-and-forget: the player's request
// never waits on it and never fails because of it.
func (s *DepositService) Submit(ctx context.Context, username string, amount float64, txID string) (domain.DepositClaim, error) {
	claim := domain.DepositClaim{
		ID:     uuid.NewString(),
		Amount: amount,
		TxID:   txID,
		Status: domain.DepositPending,
		Date:   s.now(),
	}

	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		a.Deposits = append(a.Deposits, claim)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return claim, ErrUserNotFound
		}
		return claim, err
	}

	s.notifier.Notify(fmt.Sprintf(
		"🚨 NOUVEAU DÉPÔT EN ATTENTE 🚨\n👤 Joueur : %s\n💰 Montant annoncé : %.2f €\n🔗 TxID à vérifier : %s",
		username, amount, txID))

	return claim, nil
}

// Review applies an operator decision to a pending claim. The transition is
// one-way: a claim that is no longer pending cannot be processed again.
func (s *DepositService) Review(ctx context.Context, username, depositID string, action DepositAction) error {
	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		claim := a.FindDeposit(depositID)
		if claim == nil {
			return ErrDepositNotFound
		}
		if claim.Status != domain.DepositPending {
			return ErrAlreadyProcessed
		}

		switch action {
		case DepositApprove:
			claim.Status = domain.DepositApproved
			a.Balance += claim.Amount
			a.AddHistory(domain.EventDeposit, claim.Amount, "Dépôt Crypto validé", s.now())
		case DepositReject:
			claim.Status = domain.DepositRejected
		default:
			return fmt.Errorf("unknown deposit action %q", action)
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		s.log.Info("deposit reviewed", "user", username, "deposit", depositID, "action", string(action))
	}
	return err
}
