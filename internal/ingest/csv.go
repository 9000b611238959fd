// Package ingest reads transaction datasets from CSV files, validating
// rows against the domain rules under an explicit error policy.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
)

// Policy selects how malformed rows are handled. The choice is always
// explicit; there is no silent default at the call sites.
type Policy string

const (
	// PolicySkip drops malformed rows and reports them in the load report.
	PolicySkip Policy = "skip"
	// PolicyFail aborts the load on the first malformed row.
	PolicyFail Policy = "fail"
)

// ParsePolicy converts a flag value into a Policy.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicySkip:
		return PolicySkip, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", errors.WithMetadata(errors.CodeIngestPolicyInvalid,
			fmt.Sprintf("unknown ingest policy %q (want %q or %q)", value, PolicySkip, PolicyFail),
			map[string]string{"policy": value})
	}
}

// reportErrorCap bounds how many row errors the report retains; the
// skipped counter always covers the full file.
const reportErrorCap = 10

// RowError records one rejected row.
type RowError struct {
	// Row is the 1-based data row number, excluding the header.
	Row int
	Err error
}

// Report summarizes one load.
type Report struct {
	Loaded  int
	Skipped int
	// Errors holds the first reportErrorCap row errors.
	Errors []RowError
}

// dateLayouts are the accepted order_date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

type columnIndex struct {
	customerID      int
	orderID         int
	orderDate       int
	orderValue      int
	productID       int
	productCategory int
	state           int
}

// ReadCSV parses transactions from r. The first record must be a header
// naming at least customer_id, order_date and order_value; order_id,
// product_id, product_category and state are optional columns.
func ReadCSV(r io.Reader, policy Policy) ([]domain.Transaction, Report, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, Report{}, errors.New(errors.CodeIngestHeaderMissing, "csv has no header row")
	}
	if err != nil {
		return nil, Report{}, errors.Wrap(errors.CodeIngestSourceUnusable, "read csv header", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, Report{}, err
	}

	var transactions []domain.Transaction
	var report Report
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Report{}, errors.Wrap(errors.CodeIngestSourceUnusable,
				fmt.Sprintf("read csv row %d", row), err)
		}

		tx, err := parseRow(record, columns)
		if err == nil {
			err = tx.Validate()
		}
		if err != nil {
			if policy == PolicyFail {
				return nil, report, errors.Wrap(errors.CodeIngestRowMalformed,
					fmt.Sprintf("row %d rejected", row), err)
			}
			report.Skipped++
			if len(report.Errors) < reportErrorCap {
				report.Errors = append(report.Errors, RowError{Row: row, Err: err})
			}
			continue
		}
		transactions = append(transactions, tx)
		report.Loaded++
	}
	return transactions, report, nil
}

// LoadFile reads transactions from a CSV file on disk.
func LoadFile(path string, policy Policy) ([]domain.Transaction, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, errors.Wrap(errors.CodeIngestSourceUnusable, "open csv file", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadCSV(f, policy)
}

func mapColumns(header []string) (columnIndex, error) {
	columns := columnIndex{
		customerID:      -1,
		orderID:         -1,
		orderDate:       -1,
		orderValue:      -1,
		productID:       -1,
		productCategory: -1,
		state:           -1,
	}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "customer_id":
			columns.customerID = i
		case "order_id":
			columns.orderID = i
		case "order_date":
			columns.orderDate = i
		case "order_value":
			columns.orderValue = i
		case "product_id":
			columns.productID = i
		case "product_category":
			columns.productCategory = i
		case "state":
			columns.state = i
		}
	}
	for _, required := range []struct {
		name  string
		index int
	}{
		{"customer_id", columns.customerID},
		{"order_date", columns.orderDate},
		{"order_value", columns.orderValue},
	} {
		if required.index == -1 {
			return columnIndex{}, errors.WithMetadata(errors.CodeIngestHeaderMissing,
				fmt.Sprintf("csv header is missing the %s column", required.name),
				map[string]string{"column": required.name})
		}
	}
	return columns, nil
}

func parseRow(record []string, columns columnIndex) (domain.Transaction, error) {
	field := func(index int) string {
		if index < 0 || index >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[index])
	}

	rawDate := field(columns.orderDate)
	orderDate, err := parseDate(rawDate)
	if err != nil {
		return domain.Transaction{}, errors.WithMetadata(errors.CodeIngestRowMalformed,
			fmt.Sprintf("unparseable order_date %q", rawDate),
			map[string]string{"order_date": rawDate})
	}

	rawValue := field(columns.orderValue)
	orderValue, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return domain.Transaction{}, errors.WithMetadata(errors.CodeIngestRowMalformed,
			fmt.Sprintf("unparseable order_value %q", rawValue),
			map[string]string{"order_value": rawValue})
	}

	return domain.Transaction{
		CustomerID:      field(columns.customerID),
		OrderID:         field(columns.orderID),
		OrderDate:       orderDate,
		OrderValue:      orderValue,
		ProductID:       field(columns.productID),
		ProductCategory: field(columns.productCategory),
		State:           field(columns.state),
	}, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("no accepted layout matches %q", value)
}
