package domain

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
)

func validTransaction() Transaction {
	return Transaction{
		CustomerID:      "cust-1",
		OrderID:         "order-1",
		OrderDate:       time.Date(2018, time.March, 4, 12, 30, 0, 0, time.UTC),
		OrderValue:      59.90,
		ProductID:       "prod-1",
		ProductCategory: "beleza_saude",
		State:           "SP",
	}
}

func TestValidateAcceptsWellFormedTransaction(t *testing.T) {
	t.Parallel()

	if err := validTransaction().Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Transaction)
		code   errors.Code
	}{
		{
			name:   "missing customer id",
			mutate: func(tx *Transaction) { tx.CustomerID = "" },
			code:   errors.CodeTransactionCustomerIDEmpty,
		},
		{
			name:   "zero order date",
			mutate: func(tx *Transaction) { tx.OrderDate = time.Time{} },
			code:   errors.CodeTransactionOrderDateZero,
		},
		{
			name:   "negative order value",
			mutate: func(tx *Transaction) { tx.OrderValue = -5 },
			code:   errors.CodeTransactionValueNegative,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := validTransaction()
			tc.mutate(&tx)
			err := tx.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !stderrors.Is(err, errors.New(tc.code, "")) {
				t.Fatalf("error code = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestValidateAllowsZeroValueAndMissingOptionalFields(t *testing.T) {
	t.Parallel()

	tx := validTransaction()
	tx.OrderValue = 0
	tx.OrderID = ""
	tx.ProductID = ""
	tx.ProductCategory = ""
	tx.State = ""
	if err := tx.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
