package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

const testSchema = `
CREATE TABLE accounts (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	name TEXT NOT NULL,
	current_balance NUMERIC(14, 2),
	currency CHAR(3) NOT NULL DEFAULT 'CAD',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at TIMESTAMPTZ
);

CREATE TABLE categories (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	is_system BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ
);

CREATE TABLE transactions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	account_id UUID REFERENCES accounts (id),
	category_id UUID REFERENCES categories (id),
	type TEXT NOT NULL,
	amount NUMERIC(14, 2) NOT NULL,
	currency CHAR(3) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	transaction_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at TIMESTAMPTZ
);
`

const (
	testUserID     = "5f7a9c2e-0000-4000-8000-000000000001"
	testAccountID  = "5f7a9c2e-0000-4000-8000-000000000002"
	testCategoryID = "5f7a9c2e-0000-4000-8000-000000000003"
)

func setupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("finflow_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, testSchema)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, name, current_balance) VALUES ($1, $2, 'Chequing', 500.00)`,
		testAccountID, testUserID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, type) VALUES ($1, $2, 'Groceries', 'EXPENSE')`,
		testCategoryID, testUserID)
	require.NoError(t, err)

	return db
}

func integrationTransaction(id string) domain.Transaction {
	return domain.Transaction{
		ID:            id,
		UserID:        testUserID,
		AccountID:     testAccountID,
		CategoryID:    testCategoryID,
		Type:          domain.TypeExpense,
		Amount:        decimal.RequireFromString("42.50"),
		Currency:      "CAD",
		Description:   "Weekly groceries",
		TransactionAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDatabase(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	first := integrationTransaction("5f7a9c2e-0000-4000-8000-000000000010")
	second := integrationTransaction("5f7a9c2e-0000-4000-8000-000000000011")
	second.TransactionAt = first.TransactionAt.Add(24 * time.Hour)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID, testUserID)
		require.NoError(t, err)
		assert.Equal(t, "Weekly groceries", found.Description)
		assert.True(t, found.Amount.Equal(first.Amount))
	})

	t.Run("find scoped to owner", func(t *testing.T) {
		_, err := repo.FindByID(ctx, first.ID, "5f7a9c2e-0000-4000-8000-00000000dead")
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated := first
		updated.Amount = decimal.RequireFromString("99.99")
		require.NoError(t, repo.Update(ctx, updated))

		found, err := repo.FindByID(ctx, first.ID, testUserID)
		require.NoError(t, err)
		assert.True(t, found.Amount.Equal(updated.Amount))
	})

	t.Run("list view items joins references", func(t *testing.T) {
		items, err := repo.ListViewItems(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		// newest first
		assert.Equal(t, second.ID, items[0].ID)
		require.NotNil(t, items[0].Account)
		assert.Equal(t, "Chequing", items[0].Account.Name)
		require.NotNil(t, items[0].Account.CurrentBalance)
		assert.True(t, items[0].Account.CurrentBalance.Equal(decimal.RequireFromString("500.00")))
		require.NotNil(t, items[0].Category)
		assert.Equal(t, "Groceries", items[0].Category.Name)
	})

	t.Run("soft delete hides and restore brings back", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, first.ID, testUserID))

		_, err := repo.FindByID(ctx, first.ID, testUserID)
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

		items, err := repo.ListViewItems(ctx, testUserID)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		require.NoError(t, repo.Restore(ctx, first.ID, testUserID))
		_, err = repo.FindByID(ctx, first.ID, testUserID)
		assert.NoError(t, err)
	})

	t.Run("bulk soft delete counts only owned live rows", func(t *testing.T) {
		count, err := repo.SoftDeleteMany(ctx, []string{first.ID, second.ID, "5f7a9c2e-0000-4000-8000-00000000beef"}, testUserID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("purge removes rows past cutoff", func(t *testing.T) {
		count, err := repo.PurgeDeletedBefore(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		err = repo.Restore(ctx, first.ID, testUserID)
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})
}
