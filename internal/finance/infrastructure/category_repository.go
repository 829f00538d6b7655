package infrastructure

import (
	"context"
	"database/sql"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, type, is_system
        FROM categories WHERE user_id = $1 AND deleted_at IS NULL ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name,
			&category.Type, &category.IsSystem); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ExistsForUser(ctx context.Context, categoryID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL)`,
		categoryID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID, userID string, update domain.CategoryUpdate) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories
        SET name = COALESCE($1, name), type = COALESCE($2, type), is_system = COALESCE($3, is_system)
        WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL`,
		update.Name, (*string)(update.Type), update.IsSystem, categoryID, userID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
