package infrastructure

import (
	"context"
	"database/sql"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, current_balance, currency, created_at
        FROM accounts WHERE user_id = $1 AND deleted_at IS NULL ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		var balance decimal.NullDecimal
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &balance,
			&account.Currency, &account.CreatedAt); err != nil {
			return nil, err
		}
		if balance.Valid {
			value := balance.Decimal
			account.CurrentBalance = &value
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) ExistsForUser(ctx context.Context, accountID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL)`,
		accountID, userID,
	).Scan(&exists)
	return exists, err
}
