package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abinig29/expense-bot/pkg/db"
	"github.com/abinig29/expense-bot/pkg/spend"
)

func TestFormatDailySummary(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty day", func(t *testing.T) {
		got := formatDailySummary(spend.BuildDailySummary(date, nil))
		if !strings.Contains(got, "No expenses recorded for this day.") {
			t.Errorf("missing empty-day notice in %q", got)
		}
		if !strings.Contains(got, "$0.00") {
			t.Errorf("missing zero total in %q", got)
		}
	})

	t.Run("breakdown sorted by amount desc", func(t *testing.T) {
		summary := spend.BuildDailySummary(date, []db.Expense{
			{Amount: decimal.NewFromInt(10), CategoryName: "food"},
			{Amount: decimal.NewFromInt(90), CategoryName: "rent"},
		})
		got := formatDailySummary(summary)

		foodAt := strings.Index(got, "food: $10.00")
		rentAt := strings.Index(got, "rent: $90.00")
		if foodAt == -1 || rentAt == -1 {
			t.Fatalf("missing breakdown entries in %q", got)
		}
		if rentAt > foodAt {
			t.Error("breakdown not sorted by descending amount")
		}
		if !strings.Contains(got, "(90.0%)") {
			t.Errorf("missing percentage in %q", got)
		}
		if !strings.Contains(got, "$100.00") {
			t.Errorf("missing total in %q", got)
		}
	})
}

func TestFormatExpensesAdded(t *testing.T) {
	expenses := []db.Expense{
		{Amount: decimal.RequireFromString("25.50"), CategoryName: "food"},
		{Amount: decimal.RequireFromString("150.00"), CategoryName: "rent"},
	}

	t.Run("without skipped", func(t *testing.T) {
		got := formatExpensesAdded(expenses, 0)
		if !strings.Contains(got, "$175.50") {
			t.Errorf("missing total in %q", got)
		}
		if strings.Contains(got, "Skipped") {
			t.Errorf("unexpected skipped notice in %q", got)
		}
	})

	t.Run("with skipped", func(t *testing.T) {
		got := formatExpensesAdded(expenses, 1)
		if !strings.Contains(got, "Skipped blocks (invalid format): 1") {
			t.Errorf("missing skipped notice in %q", got)
		}
	})
}

func TestSanitizeAdvice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Spend less on coffee.",
			want: "Spend less on coffee.",
		},
		{
			name: "code block removed",
			in:   "before ```code here``` after",
			want: "before  after",
		},
		{
			name: "unterminated code block truncated",
			in:   "before ```oops",
			want: "before",
		},
		{
			name: "bold markers downgraded",
			in:   "this is **important**",
			want: "this is *important*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeAdvice(tt.in); got != tt.want {
				t.Errorf("sanitizeAdvice(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("clamps length", func(t *testing.T) {
		got := sanitizeAdvice(strings.Repeat("a", 5000))
		if len(got) != 4000 {
			t.Errorf("len = %d, want 4000", len(got))
		}
	})
}
