package spend

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abinig29/expense-bot/pkg/db"
)

func expense(amount string, category string) db.Expense {
	return db.Expense{
		Amount:       decimal.RequireFromString(amount),
		CategoryName: category,
	}
}

func TestBuildDailySummary(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty day", func(t *testing.T) {
		summary := BuildDailySummary(date, nil)
		if !summary.TotalAmount.IsZero() {
			t.Errorf("TotalAmount = %s, want 0", summary.TotalAmount)
		}
		if len(summary.Expenses) != 0 {
			t.Errorf("Expenses = %d, want 0", len(summary.Expenses))
		}
		if len(summary.Breakdown) != 0 {
			t.Errorf("Breakdown = %d, want 0", len(summary.Breakdown))
		}
	})

	t.Run("totals round trip exactly", func(t *testing.T) {
		summary := BuildDailySummary(date, []db.Expense{
			expense("25.50", "food"),
			expense("150.00", "transport"),
		})
		want := decimal.RequireFromString("175.50")
		if !summary.TotalAmount.Equal(want) {
			t.Errorf("TotalAmount = %s, want %s", summary.TotalAmount, want)
		}
	})

	t.Run("groups by label in first-seen order", func(t *testing.T) {
		summary := BuildDailySummary(date, []db.Expense{
			expense("10", "food"),
			expense("5", "transport"),
			expense("7.25", "food"),
		})

		if len(summary.Breakdown) != 2 {
			t.Fatalf("Breakdown = %d entries, want 2", len(summary.Breakdown))
		}
		if summary.Breakdown[0].Name != "food" || summary.Breakdown[1].Name != "transport" {
			t.Errorf("Breakdown order = %q, %q; want food, transport",
				summary.Breakdown[0].Name, summary.Breakdown[1].Name)
		}
		if want := decimal.RequireFromString("17.25"); !summary.Breakdown[0].Amount.Equal(want) {
			t.Errorf("food total = %s, want %s", summary.Breakdown[0].Amount, want)
		}
	})
}

func TestBuildOverallStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		stats := BuildOverallStats(nil, decimal.Zero)
		if stats.EntryCount != 0 || stats.CategoryCount != 0 || !stats.TotalAmount.IsZero() {
			t.Errorf("BuildOverallStats(nil) = %+v, want zero stats", stats)
		}
	})

	t.Run("counts distinct labels", func(t *testing.T) {
		stats := BuildOverallStats([]db.Expense{
			expense("10", "food"),
			expense("20", "food"),
			expense("5", "transport"),
		}, decimal.RequireFromString("15"))

		if want := decimal.RequireFromString("35"); !stats.TotalAmount.Equal(want) {
			t.Errorf("TotalAmount = %s, want %s", stats.TotalAmount, want)
		}
		if stats.CategoryCount != 2 {
			t.Errorf("CategoryCount = %d, want 2", stats.CategoryCount)
		}
		if stats.EntryCount != 3 {
			t.Errorf("EntryCount = %d, want 3", stats.EntryCount)
		}
		if want := decimal.RequireFromString("15"); !stats.ThisMonthTotal.Equal(want) {
			t.Errorf("ThisMonthTotal = %s, want %s", stats.ThisMonthTotal, want)
		}
	})
}
