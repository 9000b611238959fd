// Package domain defines the transaction record consumed by the analytics
// engine and its validation rules.
package domain

import (
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
)

// Transaction is one immutable order line from the source dataset.
type Transaction struct {
	// CustomerID identifies the purchasing customer. Required.
	CustomerID string
	// OrderID identifies the order the line belongs to. Optional; when
	// present, frequency counts distinct order IDs instead of raw rows.
	OrderID string
	// OrderDate is the purchase timestamp. Must be non-zero.
	OrderDate time.Time
	// OrderValue is the line revenue. Must be non-negative.
	OrderValue float64
	// ProductID identifies the purchased product. Optional.
	ProductID string
	// ProductCategory groups products for category rollups.
	ProductCategory string
	// State is the customer's state or region for geographic rollups.
	State string
}

// Validate checks the transaction against ingestion rules. Violations are
// reported to the caller as structured domain errors, never dropped
// silently.
func (t Transaction) Validate() error {
	if t.CustomerID == "" {
		return errors.New(errors.CodeTransactionCustomerIDEmpty, "customer id is required")
	}
	if t.OrderDate.IsZero() {
		return errors.WithMetadata(
			errors.CodeTransactionOrderDateZero,
			"order date is required",
			map[string]string{"customer_id": t.CustomerID},
		)
	}
	if t.OrderValue < 0 {
		return errors.WithMetadata(
			errors.CodeTransactionValueNegative,
			"order value must be non-negative",
			map[string]string{"customer_id": t.CustomerID},
		)
	}
	return nil
}
