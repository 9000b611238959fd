package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
)

const sampleCSV = `customer_id,order_id,order_date,order_value,product_id,product_category,state
cust-1,order-1,2018-01-05 10:00:00,59.90,prod-1,beauty,SP
cust-2,order-2,2018-01-06,20.00,prod-2,toys,RJ
cust-3,order-3,2018-01-07T15:04:05Z,12.50,,,
`

func TestReadCSVParsesAllLayouts(t *testing.T) {
	t.Parallel()

	transactions, report, err := ReadCSV(strings.NewReader(sampleCSV), PolicyFail)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if report.Loaded != 3 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 3 loaded and 0 skipped", report)
	}
	if len(transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(transactions))
	}
	want := time.Date(2018, time.January, 5, 10, 0, 0, 0, time.UTC)
	if !transactions[0].OrderDate.Equal(want) {
		t.Fatalf("order date = %v, want %v", transactions[0].OrderDate, want)
	}
	if transactions[1].OrderDate.Hour() != 0 {
		t.Fatalf("date-only layout should parse to midnight, got %v", transactions[1].OrderDate)
	}
	if transactions[2].OrderDate.Hour() != 15 {
		t.Fatalf("rfc3339 layout should keep the hour, got %v", transactions[2].OrderDate)
	}
	if transactions[0].ProductCategory != "beauty" || transactions[0].State != "SP" {
		t.Fatalf("unexpected row: %+v", transactions[0])
	}
}

func TestReadCSVShuffledHeader(t *testing.T) {
	t.Parallel()

	input := `order_value,state,customer_id,order_date
10.0,SP,cust-1,2018-01-05
`
	transactions, _, err := ReadCSV(strings.NewReader(input), PolicyFail)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].CustomerID != "cust-1" || transactions[0].State != "SP" {
		t.Fatalf("columns mapped wrong: %+v", transactions[0])
	}
	if transactions[0].OrderID != "" {
		t.Fatalf("missing optional column should be empty, got %q", transactions[0].OrderID)
	}
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	t.Parallel()

	input := `customer_id,order_date
cust-1,2018-01-05
`
	_, _, err := ReadCSV(strings.NewReader(input), PolicySkip)
	if errors.CodeOf(err) != errors.CodeIngestHeaderMissing {
		t.Fatalf("error = %v, want code %s", err, errors.CodeIngestHeaderMissing)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	t.Parallel()

	_, _, err := ReadCSV(strings.NewReader(""), PolicySkip)
	if errors.CodeOf(err) != errors.CodeIngestHeaderMissing {
		t.Fatalf("error = %v, want code %s", err, errors.CodeIngestHeaderMissing)
	}
}

func TestReadCSVSkipPolicy(t *testing.T) {
	t.Parallel()

	input := `customer_id,order_date,order_value
cust-1,2018-01-05,10.0
cust-2,not-a-date,10.0
,2018-01-06,10.0
cust-4,2018-01-07,-3
cust-5,2018-01-08,15.5
`
	transactions, report, err := ReadCSV(strings.NewReader(input), PolicySkip)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if report.Loaded != 2 || report.Skipped != 3 {
		t.Fatalf("report = %+v, want 2 loaded and 3 skipped", report)
	}
	if len(report.Errors) != 3 {
		t.Fatalf("expected 3 row errors, got %d", len(report.Errors))
	}
	if report.Errors[0].Row != 2 {
		t.Fatalf("first error row = %d, want 2", report.Errors[0].Row)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if transactions[1].CustomerID != "cust-5" {
		t.Fatalf("expected cust-5 to survive, got %q", transactions[1].CustomerID)
	}
}

func TestReadCSVFailPolicy(t *testing.T) {
	t.Parallel()

	input := `customer_id,order_date,order_value
cust-1,2018-01-05,10.0
cust-2,not-a-date,10.0
`
	_, report, err := ReadCSV(strings.NewReader(input), PolicyFail)
	if errors.CodeOf(err) != errors.CodeIngestRowMalformed {
		t.Fatalf("error = %v, want code %s", err, errors.CodeIngestRowMalformed)
	}
	if report.Loaded != 1 {
		t.Fatalf("report should reflect rows read before the failure, got %+v", report)
	}
}

func TestReadCSVErrorCap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("customer_id,order_date,order_value\n")
	for i := 0; i < reportErrorCap+5; i++ {
		b.WriteString("cust,bad-date,10\n")
	}
	_, report, err := ReadCSV(strings.NewReader(b.String()), PolicySkip)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if report.Skipped != reportErrorCap+5 {
		t.Fatalf("skipped = %d, want %d", report.Skipped, reportErrorCap+5)
	}
	if len(report.Errors) != reportErrorCap {
		t.Fatalf("retained errors = %d, want %d", len(report.Errors), reportErrorCap)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "skip", want: PolicySkip},
		{input: " Fail ", want: PolicyFail},
		{input: "ignore", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePolicy(test.input)
			if test.wantErr {
				if errors.CodeOf(err) != errors.CodeIngestPolicyInvalid {
					t.Fatalf("error = %v, want code %s", err, errors.CodeIngestPolicyInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse policy: %v", err)
			}
			if got != test.want {
				t.Fatalf("policy = %q, want %q", got, test.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFile("does-not-exist.csv", PolicySkip)
	if errors.CodeOf(err) != errors.CodeIngestSourceUnusable {
		t.Fatalf("error = %v, want code %s", err, errors.CodeIngestSourceUnusable)
	}
}
