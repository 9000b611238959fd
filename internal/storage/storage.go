// Package storage defines persistence contracts for the transaction
// dataset.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// DatasetBounds describes the time span covered by the stored dataset.
type DatasetBounds struct {
	Earliest time.Time
	Latest   time.Time
}

// TransactionStore persists the immutable transaction dataset.
type TransactionStore interface {
	// AppendTransactions inserts a validated batch.
	AppendTransactions(ctx context.Context, transactions []domain.Transaction) error
	// ListTransactions returns transactions ordered by order date then
	// insertion order. Zero bounds leave that side of the range open; the
	// upper bound is inclusive.
	ListTransactions(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
	// CountTransactions reports the dataset size.
	CountTransactions(ctx context.Context) (int64, error)
	// Bounds reports the earliest and latest order dates, or ErrNotFound
	// for an empty dataset.
	Bounds(ctx context.Context) (DatasetBounds, error)
}
