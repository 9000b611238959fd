// Package errors provides structured error handling for the analytics
// platform.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Transaction validation errors
	CodeTransactionCustomerIDEmpty Code = "TRANSACTION_CUSTOMER_ID_EMPTY"
	CodeTransactionOrderDateZero   Code = "TRANSACTION_ORDER_DATE_ZERO"
	CodeTransactionValueNegative   Code = "TRANSACTION_ORDER_VALUE_NEGATIVE"

	// Ingestion errors
	CodeIngestRowMalformed   Code = "INGEST_ROW_MALFORMED"
	CodeIngestHeaderMissing  Code = "INGEST_HEADER_MISSING"
	CodeIngestPolicyInvalid  Code = "INGEST_POLICY_INVALID"
	CodeIngestSourceUnusable Code = "INGEST_SOURCE_UNUSABLE"

	// Segment rule table errors
	CodeSegmentRulesUnreadable Code = "SEGMENT_RULES_UNREADABLE"
	CodeSegmentRulesInvalid    Code = "SEGMENT_RULES_INVALID"

	// Query errors
	CodeQueryRangeInvalid Code = "QUERY_RANGE_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeStorage  Code = "STORAGE"
)

// HTTPStatus maps an error code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeTransactionCustomerIDEmpty,
		CodeTransactionOrderDateZero,
		CodeTransactionValueNegative,
		CodeIngestRowMalformed,
		CodeIngestHeaderMissing,
		CodeIngestPolicyInvalid,
		CodeQueryRangeInvalid,
		CodeSegmentRulesInvalid:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeIngestSourceUnusable,
		CodeSegmentRulesUnreadable,
		CodeStorage,
		CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
