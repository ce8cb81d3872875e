package service

import (
	"context"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VIPService derives an account's tier from its live referral count. The
// result is never cached on the account: referral counts change whenever a
// new referee registers, independently of the account record.
type VIPService struct {
	store AccountStore
}

func NewVIPService(db *pgxpool.Pool) *VIPService {
	return &VIPService{store: repository.NewAccountRepository(db)}
}

func NewVIPServiceWithStore(store AccountStore) *VIPService {
	return &VIPService{store: store}
}

// Evaluate counts accounts referred by the given code and selects the
// highest tier whose requirement the count satisfies. No side effects.
func (s *VIPService) Evaluate(ctx context.Context, referralCode string) (domain.VIPStatus, error) {
	count, err := s.store.CountReferrals(ctx, referralCode)
	if err != nil {
		return domain.VIPStatus{}, err
	}
	return domain.VIPStatus{
		VIPTier:       domain.SelectTier(count),
		ReferralCount: count,
	}, nil
}
