package report

import (
	"testing"
	"time"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/domain"
)

func at(day, hour int) time.Time {
	return time.Date(2018, time.January, day, hour, 0, 0, 0, time.UTC)
}

func line(customer, order string, date time.Time, value float64, product, category, state string) domain.Transaction {
	return domain.Transaction{
		CustomerID:      customer,
		OrderID:         order,
		OrderDate:       date,
		OrderValue:      value,
		ProductID:       product,
		ProductCategory: category,
		State:           state,
	}
}

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		// Monday Jan 1 2018
		line("a", "o1", at(1, 9), 100, "p1", "beauty", "SP"),
		line("a", "o1", at(1, 9), 50, "p2", "toys", "SP"),
		line("b", "o2", at(2, 14), 200, "p3", "beauty", "RJ"),
		// Saturday Jan 6
		line("c", "o3", at(6, 20), 25, "p1", "beauty", "SP"),
	}
}

func TestKPIsTotals(t *testing.T) {
	t.Parallel()

	got := KPIs(sampleTransactions())
	if got.TotalRevenue != 375 {
		t.Fatalf("revenue = %f, want 375", got.TotalRevenue)
	}
	if got.TotalOrders != 3 {
		t.Fatalf("orders = %d, want 3 distinct", got.TotalOrders)
	}
	if got.TotalCustomers != 3 {
		t.Fatalf("customers = %d, want 3", got.TotalCustomers)
	}
	if got.AverageOrderValue != 125 {
		t.Fatalf("aov = %f, want 125", got.AverageOrderValue)
	}
}

func TestKPIsEmptyInput(t *testing.T) {
	t.Parallel()

	got := KPIs(nil)
	if got.TotalRevenue != 0 || got.TotalOrders != 0 || got.TotalCustomers != 0 || got.AverageOrderValue != 0 {
		t.Fatalf("expected zero KPIs for empty input, got %+v", got)
	}
}

func TestKPIsCountsAnonymousOrdersPerRow(t *testing.T) {
	t.Parallel()

	transactions := []domain.Transaction{
		line("a", "", at(1, 9), 10, "", "", ""),
		line("a", "", at(2, 9), 10, "", "", ""),
	}
	if got := KPIs(transactions).TotalOrders; got != 2 {
		t.Fatalf("orders = %d, want 2 when order ids are absent", got)
	}
}
