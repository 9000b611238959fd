// Package sqlite provides a SQLite-backed transaction store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
	sqlitemigrate "github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/storage/sqlitemigrate"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/storage"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the transaction dataset in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite transaction store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendTransactions inserts a batch inside one transaction. Every record
// is validated first; a single invalid record rejects the whole batch.
func (s *Store) AppendTransactions(ctx context.Context, transactions []domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(transactions) == 0 {
		return nil
	}
	for _, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("validate transaction: %w", err)
		}
	}

	dbTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append transaction: %w", err)
	}
	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO transactions (
	   customer_id,
	   order_id,
	   order_date,
	   order_value,
	   product_id,
	   product_category,
	   state
	 ) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = dbTx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, tx := range transactions {
		if _, err := stmt.ExecContext(
			ctx,
			tx.CustomerID,
			tx.OrderID,
			toMillis(tx.OrderDate),
			tx.OrderValue,
			tx.ProductID,
			tx.ProductCategory,
			tx.State,
		); err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit append transaction: %w", err)
	}
	return nil
}

// ListTransactions returns transactions ordered by order date then
// insertion order. Zero bounds leave that side open; the upper bound is
// inclusive.
func (s *Store) ListTransactions(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT
	   customer_id,
	   order_id,
	   order_date,
	   order_value,
	   product_id,
	   product_category,
	   state
	 FROM transactions`
	var conditions []string
	var args []any
	if !from.IsZero() {
		conditions = append(conditions, "order_date >= ?")
		args = append(args, toMillis(from))
	}
	if !to.IsZero() {
		conditions = append(conditions, "order_date <= ?")
		args = append(args, toMillis(to))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_date ASC, id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var orderDate int64
		if err := rows.Scan(
			&tx.CustomerID,
			&tx.OrderID,
			&orderDate,
			&tx.OrderValue,
			&tx.ProductID,
			&tx.ProductCategory,
			&tx.State,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.OrderDate = fromMillis(orderDate)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// CountTransactions reports the dataset size.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// Bounds reports the earliest and latest order dates in the dataset.
func (s *Store) Bounds(ctx context.Context) (storage.DatasetBounds, error) {
	if err := ctx.Err(); err != nil {
		return storage.DatasetBounds{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.DatasetBounds{}, fmt.Errorf("storage is not configured")
	}
	var earliest, latest sql.NullInt64
	err := s.sqlDB.QueryRowContext(
		ctx, "SELECT MIN(order_date), MAX(order_date) FROM transactions",
	).Scan(&earliest, &latest)
	if err != nil {
		return storage.DatasetBounds{}, fmt.Errorf("dataset bounds: %w", err)
	}
	if !earliest.Valid || !latest.Valid {
		return storage.DatasetBounds{}, storage.ErrNotFound
	}
	return storage.DatasetBounds{
		Earliest: fromMillis(earliest.Int64),
		Latest:   fromMillis(latest.Int64),
	}, nil
}
