package report

import (
	"strings"
	"testing"
)

func TestCategoriesRollup(t *testing.T) {
	t.Parallel()

	summaries := Categories(sampleTransactions())
	if len(summaries) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summaries))
	}
	// beauty: o1 line (100) + o2 (200) + o3 (25) = 325, 3 orders, products p1,p3.
	if summaries[0].Category != "beauty" {
		t.Fatalf("summaries[0] = %+v, want beauty first by revenue", summaries[0])
	}
	if summaries[0].Revenue != 325 {
		t.Fatalf("beauty revenue = %f, want 325", summaries[0].Revenue)
	}
	if summaries[0].Orders != 3 {
		t.Fatalf("beauty orders = %d, want 3", summaries[0].Orders)
	}
	if summaries[0].Products != 2 {
		t.Fatalf("beauty products = %d, want 2", summaries[0].Products)
	}
	if summaries[1].Category != "toys" || summaries[1].Revenue != 50 {
		t.Fatalf("summaries[1] = %+v, want toys with 50", summaries[1])
	}
}

func TestCategoriesGroupsMissingCategory(t *testing.T) {
	t.Parallel()

	transactions := sampleTransactions()
	transactions[0].ProductCategory = ""
	summaries := Categories(transactions)
	found := false
	for _, s := range summaries {
		if s.Category == UncategorizedLabel {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q bucket, got %v", UncategorizedLabel, summaries)
	}
}

func TestTopCategoriesTruncates(t *testing.T) {
	t.Parallel()

	summaries := Categories(sampleTransactions())
	top := TopCategories(summaries, 1)
	if len(top) != 1 || top[0].Category != "beauty" {
		t.Fatalf("top = %v, want only beauty", top)
	}
	all := TopCategories(summaries, 10)
	if len(all) != len(summaries) {
		t.Fatalf("expected full slice when n exceeds length, got %d", len(all))
	}
}

func TestCategoryInsights(t *testing.T) {
	t.Parallel()

	insights := CategoryInsights(Categories(sampleTransactions()))
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if insights[0].Title != "Revenue Driver" || !strings.Contains(insights[0].Body, "beauty") {
		t.Fatalf("insights[0] = %+v", insights[0])
	}
	if insights[1].Title != "Portfolio Concentration" {
		t.Fatalf("insights[1] = %+v", insights[1])
	}
	if insights[2].Title != "High-Value Transactions" {
		t.Fatalf("insights[2] = %+v", insights[2])
	}
}

func TestCategoryInsightsEmpty(t *testing.T) {
	t.Parallel()

	if got := CategoryInsights(nil); got != nil {
		t.Fatalf("expected nil insights, got %v", got)
	}
}
