package repository

import (
	"context"
	"errors"

	"arctic_mining/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("account not found")

const accountColumns = `username, password_hash, balance, withdrawal_balance,
	referral_code, COALESCE(referred_by, ''), COALESCE(avatar, ''), COALESCE(email, ''),
	inventory, history, deposits, last_collection, created_at`

// AccountRepository persists player accounts as whole documents. Balances and
// scalar fields are plain columns; inventory, history and deposits live in
// JSONB so the record round-trips like the document it is.
type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.Username,
		&a.PasswordHash,
		&a.Balance,
		&a.WithdrawalBalance,
		&a.ReferralCode,
		&a.ReferredBy,
		&a.Avatar,
		&a.Email,
		&a.Inventory,
		&a.History,
		&a.Deposits,
		&a.LastCollection,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.Inventory == nil {
		a.Inventory = make(map[string]int)
	}
	return &a, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE referral_code = $1`, code)
	return scanAccount(row)
}

// CountReferrals counts accounts referred by the given code. The count is
// point-in-time: referral counts move independently of any account record,
// which is why tiers are recomputed on every use.
func (r *AccountRepository) CountReferrals(ctx context.Context, code string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE referred_by = $1`, code).Scan(&n)
	return n, err
}

// ListReferrals returns the accounts referred by the given code.
func (r *AccountRepository) ListReferrals(ctx context.Context, code string) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE referred_by = $1 ORDER BY created_at`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// List returns all accounts, newest first.
func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	var res []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *a)
	}
	return res, rows.Err()
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts
		 (username, password_hash, balance, withdrawal_balance, referral_code,
		  referred_by, avatar, email, inventory, history, deposits, last_collection, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)`,
		a.Username, a.PasswordHash, a.Balance, a.WithdrawalBalance, a.ReferralCode,
		a.ReferredBy, a.Avatar, a.Email, a.Inventory, a.History, a.Deposits,
		a.LastCollection, a.CreatedAt,
	)
	return err
}

// Update runs fn against the account row under a row lock and writes the
// mutated document back in the same transaction. If fn returns an error the
// transaction rolls back and the account is left untouched; the error is
// passed through so declined business outcomes short-circuit cleanly.
//
// This replaces the read-modify-write of the original design, where two
// concurrent harvests could each read a stale balance and silently drop one
// side's credit.
func (r *AccountRepository) Update(ctx context.Context, username string, fn func(*domain.Account) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1 FOR UPDATE`, username)
	a, err := scanAccount(row)
	if err != nil {
		return err
	}

	if err := fn(a); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE accounts SET
		   password_hash = $2, balance = $3, withdrawal_balance = $4,
		   referred_by = NULLIF($5, ''), avatar = $6, email = $7,
		   inventory = $8, history = $9, deposits = $10, last_collection = $11
		 WHERE username = $1`,
		a.Username, a.PasswordHash, a.Balance, a.WithdrawalBalance,
		a.ReferredBy, a.Avatar, a.Email, a.Inventory, a.History, a.Deposits,
		a.LastCollection,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes an account permanently. There is no soft delete: ban means
// the record is gone. Referees keep their referred_by value; the dangling
// code degrades referral lookups to a no-op.
func (r *AccountRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
