package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const referralCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode returns a 6-character uppercase code.
func GenerateReferralCode() string {
	b := make([]byte, 6)
	rand.Read(b)
	for i := range b {
		b[i] = referralCodeCharset[int(b[i])%len(referralCodeCharset)]
	}
	return string(b)
}

// AccountService covers registration, login and the player read surface.
type AccountService struct {
	store AccountStore
	vip   *VIPService
	now   func() time.Time
}

func NewAccountService(db *pgxpool.Pool) *AccountService {
	return NewAccountServiceWithStore(repository.NewAccountRepository(db))
}

func NewAccountServiceWithStore(store AccountStore) *AccountService {
	return &AccountService{
		store: store,
		vip:   NewVIPServiceWithStore(store),
		now:   time.Now,
	}
}

// Register creates an account with a hashed password, a fresh referral code
// and a welcome history entry. The referredBy code is stored as-is; it is a
// weak reference resolved only at commission time.
func (s *AccountService) Register(ctx context.Context, username, password, referredBy string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &domain.Account{
		Username:       username,
		PasswordHash:   string(hash),
		ReferralCode:   GenerateReferralCode(),
		ReferredBy:     referredBy,
		Inventory:      make(map[string]int),
		LastCollection: now,
		CreatedAt:      now,
	}
	a.AddHistory(domain.EventInfo, 0, "Bienvenue sur Arctic !", now)

	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login verifies the password against the stored bcrypt hash and returns the
// account. The original compared plaintext credentials; that was a flagged
// security gap, not behavior worth keeping.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	a, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return a, nil
}

// ReferralEarning is one referee and what their harvests have earned the
// referrer so far.
type ReferralEarning struct {
	Username string  `json:"username"`
	Earnings float64 `json:"earnings"`
}

// Profile is the full player view: account, derived VIP status, projected
// daily yield and per-referee commission totals.
type Profile struct {
	Account    *domain.Account   `json:"user"`
	VIPStatus  domain.VIPStatus  `json:"vip_status"`
	TotalDaily float64           `json:"total_daily"`
	Referrals  []ReferralEarning `json:"referrals"`
}

// GetProfile assembles the profile for a username. Commission totals are
// summed from the referrer's bounded history, so they cover recent activity
// only — same as the original.
func (s *AccountService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	a, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	vip, err := s.vip.Evaluate(ctx, a.ReferralCode)
	if err != nil {
		return nil, err
	}

	referees, err := s.store.ListReferrals(ctx, a.ReferralCode)
	if err != nil {
		return nil, err
	}

	earnings := make([]ReferralEarning, 0, len(referees))
	for _, ref := range referees {
		var sum float64
		for _, h := range a.History {
			if h.Kind == domain.EventReferral && strings.Contains(h.Description, ref.Username) {
				sum += h.Amount
			}
		}
		earnings = append(earnings, ReferralEarning{Username: ref.Username, Earnings: sum})
	}

	return &Profile{
		Account:    a,
		VIPStatus:  vip,
		TotalDaily: EffectiveDailyYield(a.Inventory, vip.VIPTier),
		Referrals:  earnings,
	}, nil
}

// RankingEntry is one row of the public ranking.
type RankingEntry struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	VIPLevel int     `json:"vipLevel"`
	Avatar   string  `json:"avatar,omitempty"`
}

// Ranking lists every account with its derived VIP level.
func (s *AccountService) Ranking(ctx context.Context) ([]RankingEntry, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(accounts))
	for _, a := range accounts {
		vip, err := s.vip.Evaluate(ctx, a.ReferralCode)
		if err != nil {
			return nil, err
		}
		entries = append(entries, RankingEntry{
			Username: a.Username,
			Balance:  a.Balance,
			VIPLevel: vip.Level,
			Avatar:   a.Avatar,
		})
	}
	return entries, nil
}

// UpdateAvatar stores a new avatar URL for the account.
func (s *AccountService) UpdateAvatar(ctx context.Context, username, avatarURL string) error {
	err := s.store.Update(ctx, username, func(a *domain.Account) error {
		a.Avatar = avatarURL
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
