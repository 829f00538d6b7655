package infrastructure

import (
	"context"
	"database/sql"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Save(ctx context.Context, budget domain.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets
        (id, user_id, name, period, period_start, period_end, limit_amount, category_id, currency, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		budget.ID, budget.UserID, budget.Name, budget.Period, budget.PeriodStart, budget.PeriodEnd,
		budget.LimitAmount, budget.CategoryID, budget.Currency, budget.IsActive,
	)
	return err
}

func (r *BudgetRepository) FindByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, period, period_start, period_end, limit_amount, category_id, currency, is_active, created_at
        FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		var categoryID sql.NullString
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.Name, &budget.Period,
			&budget.PeriodStart, &budget.PeriodEnd, &budget.LimitAmount, &categoryID,
			&budget.Currency, &budget.IsActive, &budget.CreatedAt); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			budget.CategoryID = &categoryID.String
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}
