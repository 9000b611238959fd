package rfm

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
)

func TestDefaultRulesSegments(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		name    string
		r, f, m int
		want    string
	}{
		{"top tiers", 5, 5, 5, "Champions"},
		{"champion floor", 4, 4, 4, "Champions"},
		{"recent and frequent", 5, 3, 1, "Loyal Customers"},
		{"recent only", 4, 1, 1, "Potential Loyalists"},
		{"cooling off", 3, 5, 5, "Need Attention"},
		{"cooling off low value", 2, 1, 1, "Need Attention"},
		{"gone", 1, 5, 5, "Lost Customers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := rules.Segment(tc.r, tc.f, tc.m); got != tc.want {
				t.Fatalf("Segment(%d,%d,%d) = %q, want %q", tc.r, tc.f, tc.m, got, tc.want)
			}
		})
	}
}

func TestDefaultRulesCoverEveryTierTriple(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	for r := 1; r <= TierCount; r++ {
		for f := 1; f <= TierCount; f++ {
			for m := 1; m <= TierCount; m++ {
				if got := rules.Segment(r, f, m); got == "" {
					t.Fatalf("Segment(%d,%d,%d) returned empty label", r, f, m)
				}
			}
		}
	}
}

func TestSegmentFallsBackOnUnmatchedScore(t *testing.T) {
	t.Parallel()

	table, err := ParseRules([]byte(`
segments:
  - name: Whales
    monetary: {min: 5}
`))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	if got := table.Segment(1, 1, 1); got != FallbackSegment {
		t.Fatalf("Segment = %q, want fallback %q", got, FallbackSegment)
	}
	if got := table.Segment(1, 1, 5); got != "Whales" {
		t.Fatalf("Segment = %q, want %q", got, "Whales")
	}
}

func TestParseRulesRejectsInvalidTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"empty table", "segments: []"},
		{"missing name", "segments:\n  - recency: {min: 1}"},
		{"out of range", "segments:\n  - name: Bad\n    recency: {min: 9}"},
		{"inverted range", "segments:\n  - name: Bad\n    monetary: {min: 4, max: 2}"},
		{"unknown role", "segments:\n  - name: Bad\n    role: churny"},
		{"not yaml", ":\t:::"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRules([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !stderrors.Is(err, errors.New(errors.CodeSegmentRulesInvalid, "")) {
				t.Fatalf("error = %v, want code %s", err, errors.CodeSegmentRulesInvalid)
			}
		})
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
segments:
  - name: VIP
    recency: {min: 3}
    monetary: {min: 3}
fallback: Everyone Else
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	table, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if got := table.Segment(3, 1, 3); got != "VIP" {
		t.Fatalf("Segment = %q, want VIP", got)
	}
	if got := table.Segment(1, 1, 1); got != "Everyone Else" {
		t.Fatalf("Segment = %q, want configured fallback", got)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if !stderrors.Is(err, errors.New(errors.CodeSegmentRulesUnreadable, "")) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeSegmentRulesUnreadable)
	}
}

func TestSegmentNamesIncludesFallbackOnce(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	names := rules.SegmentNames()
	want := []string{
		"Champions", "Loyal Customers", "Potential Loyalists",
		"Need Attention", "Lost Customers", "Other",
	}
	if len(names) != len(want) {
		t.Fatalf("SegmentNames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("SegmentNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSegmentsWithRole(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if got := rules.SegmentsWithRole(RoleRisk); len(got) != 1 || got[0] != "Lost Customers" {
		t.Fatalf("risk segments = %v, want [Lost Customers]", got)
	}
	growth := rules.SegmentsWithRole(RoleGrowth)
	want := []string{"Potential Loyalists", "Need Attention"}
	if len(growth) != len(want) {
		t.Fatalf("growth segments = %v, want %v", growth, want)
	}
	for i := range want {
		if growth[i] != want[i] {
			t.Fatalf("growth segments = %v, want %v", growth, want)
		}
	}
	if got := rules.SegmentsWithRole("none such"); got != nil {
		t.Fatalf("expected no segments for unused role, got %v", got)
	}
}

func TestParseRulesReadsRoles(t *testing.T) {
	t.Parallel()

	table, err := ParseRules([]byte(`
segments:
  - name: Fading
    role: risk
    recency: {max: 1}
  - name: Rising
    role: growth
    recency: {min: 2, max: 3}
`))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	if got := table.SegmentsWithRole(RoleRisk); len(got) != 1 || got[0] != "Fading" {
		t.Fatalf("risk segments = %v, want [Fading]", got)
	}
	if got := table.SegmentsWithRole(RoleGrowth); len(got) != 1 || got[0] != "Rising" {
		t.Fatalf("growth segments = %v, want [Rising]", got)
	}
}
