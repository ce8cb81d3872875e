package service

import (
	"context"
	"errors"

	"arctic_mining/internal/domain"
)

// Business outcome errors shared by the economy services. Handlers map these
// to decline responses; anything else is a system failure.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrDepositNotFound   = errors.New("deposit not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCooldown          = errors.New("harvest cooldown active")
	ErrBelowMinimum      = errors.New("amount below withdrawal minimum")
	ErrAlreadyProcessed  = errors.New("deposit already processed")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrBadCredentials    = errors.New("invalid credentials")
)

// AccountStore is the document-store surface the services depend on.
// *repository.AccountRepository implements it against Postgres; tests use an
// in-memory fake.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Account, error)
	CountReferrals(ctx context.Context, code string) (int, error)
	ListReferrals(ctx context.Context, code string) ([]domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, username string, fn func(*domain.Account) error) error
	Delete(ctx context.Context, username string) error
}
