package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeTransactionValueNegative, "order value is negative")
	target := New(CodeTransactionValueNegative, "different message")
	if !stderrors.Is(err, target) {
		t.Fatal("expected errors with the same code to match")
	}

	other := New(CodeNotFound, "missing")
	if stderrors.Is(err, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeStorage, "append transactions", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Error() != "append transactions" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "append transactions")
	}
}

func TestWithMetadataCarriesContext(t *testing.T) {
	err := WithMetadata(CodeIngestRowMalformed, "bad row", map[string]string{"row": "17"})
	if err.Metadata["row"] != "17" {
		t.Fatalf("metadata row = %q, want %q", err.Metadata["row"], "17")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeTransactionValueNegative, http.StatusBadRequest},
		{CodeQueryRangeInvalid, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeStorage, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeNotFound, "missing")); got != CodeNotFound {
		t.Fatalf("CodeOf = %s, want %s", got, CodeNotFound)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf = %s, want %s", got, CodeUnknown)
	}
}
