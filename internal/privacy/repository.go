package privacy

import (
	"context"
	"database/sql"
	"time"
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Save(ctx context.Context, request Request) error {
	query := `
		INSERT INTO data_subject_requests (id, user_id, request_type, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.Type,
		request.Status,
		request.Details,
		request.CreatedAt,
		request.UpdatedAt,
	)
	return err
}

func (r *SQLRepository) FindByUser(ctx context.Context, userID string, limit int) ([]Request, error) {
	query := `
		SELECT id, request_type, status, details, created_at, updated_at, resolved_at
		FROM data_subject_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		request := Request{UserID: userID}
		var resolvedAt sql.NullTime
		if err := rows.Scan(
			&request.ID,
			&request.Type,
			&request.Status,
			&request.Details,
			&request.CreatedAt,
			&request.UpdatedAt,
			&resolvedAt,
		); err != nil {
			return nil, err
		}
		if resolvedAt.Valid {
			request.ResolvedAt = &resolvedAt.Time
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *SQLRepository) MarkDueDeletes(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE data_subject_requests
		SET status = $1, updated_at = NOW()
		WHERE request_type = $2 AND status = $3 AND created_at < $4
	`
	result, err := r.db.ExecContext(ctx, query, StatusInProgress, RequestDelete, StatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
