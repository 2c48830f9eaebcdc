package spend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abinig29/expense-bot/pkg/db"
)

// CategoryAmount is one breakdown entry: a category label and its summed
// amount within the query scope.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// DailySummary holds all expenses of one calendar day with per-label totals.
// It is recomputed on every query, never cached.
type DailySummary struct {
	Date        time.Time
	TotalAmount decimal.Decimal
	Expenses    []db.Expense
	// Breakdown entries accumulate in first-seen order; the presentation
	// layer re-sorts by descending amount.
	Breakdown []CategoryAmount
}

// OverallStats is the all-time statistics record.
type OverallStats struct {
	TotalAmount    decimal.Decimal
	CategoryCount  int
	ThisMonthTotal decimal.Decimal
	EntryCount     int
}

// BuildDailySummary aggregates the given expenses into a summary for date.
// Grouping is by the stored category label, not the resolved id.
func BuildDailySummary(date time.Time, expenses []db.Expense) DailySummary {
	summary := DailySummary{
		Date:        date,
		TotalAmount: decimal.Zero,
		Expenses:    expenses,
	}

	index := make(map[string]int, len(expenses))
	for _, expense := range expenses {
		summary.TotalAmount = summary.TotalAmount.Add(expense.Amount)

		if i, ok := index[expense.CategoryName]; ok {
			summary.Breakdown[i].Amount = summary.Breakdown[i].Amount.Add(expense.Amount)
			continue
		}
		index[expense.CategoryName] = len(summary.Breakdown)
		summary.Breakdown = append(summary.Breakdown, CategoryAmount{
			Name:   expense.CategoryName,
			Amount: expense.Amount,
		})
	}

	return summary
}

// BuildOverallStats aggregates all expenses into overall statistics.
// thisMonthTotal is computed separately by the store over
// [first of current month, now].
func BuildOverallStats(expenses []db.Expense, thisMonthTotal decimal.Decimal) OverallStats {
	stats := OverallStats{
		TotalAmount:    decimal.Zero,
		ThisMonthTotal: thisMonthTotal,
		EntryCount:     len(expenses),
	}

	labels := make(map[string]struct{}, len(expenses))
	for _, expense := range expenses {
		stats.TotalAmount = stats.TotalAmount.Add(expense.Amount)
		labels[expense.CategoryName] = struct{}{}
	}
	stats.CategoryCount = len(labels)

	return stats
}
