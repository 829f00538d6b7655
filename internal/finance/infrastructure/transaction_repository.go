package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
	"github.com/jkaczmarek/FinFlow/internal/finance/view"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, transaction domain.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions
        (id, user_id, account_id, category_id, type, amount, currency, description, transaction_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transaction.ID, transaction.UserID, transaction.AccountID, transaction.CategoryID,
		transaction.Type, transaction.Amount, transaction.Currency, transaction.Description,
		transaction.TransactionAt,
	)
	return err
}

func (r *TransactionRepository) FindByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, account_id, category_id, type, amount, currency, description, transaction_at, created_at
        FROM transactions WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		transactionID, userID,
	)

	var transaction domain.Transaction
	err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
		&transaction.Type, &transaction.Amount, &transaction.Currency, &transaction.Description,
		&transaction.TransactionAt, &transaction.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(ctx context.Context, transaction domain.Transaction) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions
        SET account_id = $1, category_id = $2, type = $3, amount = $4, currency = $5, description = $6, transaction_at = $7
        WHERE id = $8 AND user_id = $9 AND deleted_at IS NULL`,
		transaction.AccountID, transaction.CategoryID, transaction.Type, transaction.Amount,
		transaction.Currency, transaction.Description, transaction.TransactionAt,
		transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, transactionID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *TransactionRepository) SoftDeleteMany(ctx context.Context, transactionIDs []string, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = NOW() WHERE id = ANY($1::uuid[]) AND user_id = $2 AND deleted_at IS NULL`,
		transactionIDs, userID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TransactionRepository) Restore(ctx context.Context, transactionID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = NULL WHERE id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *TransactionRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListViewItems returns the dashboard snapshot for a user: every live
// transaction joined with its category and account reference.
func (r *TransactionRepository) ListViewItems(ctx context.Context, userID string) ([]view.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.description, t.amount, t.currency, t.transaction_at, t.type,
                c.id, c.name, a.id, a.name, a.current_balance
        FROM transactions t
        LEFT JOIN categories c ON c.id = t.category_id AND c.deleted_at IS NULL
        LEFT JOIN accounts a ON a.id = t.account_id AND a.deleted_at IS NULL
        WHERE t.user_id = $1 AND t.deleted_at IS NULL
        ORDER BY t.transaction_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []view.Item
	for rows.Next() {
		var item view.Item
		var categoryID, categoryName, accountID, accountName sql.NullString
		var balance decimal.NullDecimal
		if err := rows.Scan(&item.ID, &item.Description, &item.Amount, &item.Currency,
			&item.TransactionAt, &item.Type,
			&categoryID, &categoryName, &accountID, &accountName, &balance); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			item.Category = &view.CategoryRef{ID: categoryID.String, Name: categoryName.String}
		}
		if accountID.Valid {
			ref := &view.AccountRef{ID: accountID.String, Name: accountName.String}
			if balance.Valid {
				value := balance.Decimal
				ref.CurrentBalance = &value
			}
			item.Account = ref
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}
