package spend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const contextDays = 30

// ExpenseContext renders a plain-text summary of the user's last 30 days of
// spending, used as grounding context for the AI advisor.
func (m *Manager) ExpenseContext(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -contextDays)

	expenses, err := m.cr.ExpensesByDateRange(ctx, since, now)
	if err != nil {
		return "", fmt.Errorf("failed to get expenses: %w", err)
	}

	var b strings.Builder

	totalSpent := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	var userCount int
	for _, e := range expenses {
		if e.UserID != userID {
			continue
		}
		userCount++
		totalSpent = totalSpent.Add(e.Amount)
		byCategory[e.CategoryName] = byCategory[e.CategoryName].Add(e.Amount)
	}

	if userCount == 0 {
		return "The user has no recent expense data.", nil
	}

	avgDaily := totalSpent.DivRound(decimal.NewFromInt(contextDays), 2)

	fmt.Fprintf(&b, "User's Financial Data (Last %d Days):\n", contextDays)
	fmt.Fprintf(&b, "- Total spent: $%s\n", totalSpent.StringFixed(2))
	fmt.Fprintf(&b, "- Daily average: $%s\n", avgDaily.StringFixed(2))
	fmt.Fprintf(&b, "- Number of transactions: %d\n\n", userCount)

	type categoryTotal struct {
		name  string
		total decimal.Decimal
	}
	sorted := make([]categoryTotal, 0, len(byCategory))
	for name, total := range byCategory {
		sorted = append(sorted, categoryTotal{name: name, total: total})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].total.GreaterThan(sorted[j].total) })
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	b.WriteString("Top Spending Categories:\n")
	for i, ct := range sorted {
		percentage := ct.total.Div(totalSpent).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(&b, "%d. %s: $%s (%s%%)\n",
			i+1, ct.name, ct.total.StringFixed(2), percentage.StringFixed(1))
	}

	b.WriteString("\nRecent Expenses:\n")
	var listed int
	// Expenses come back oldest first, walk backwards for the most recent.
	for i := len(expenses) - 1; i >= 0 && listed < 10; i-- {
		e := expenses[i]
		if e.UserID != userID {
			continue
		}
		listed++
		fmt.Fprintf(&b, "- $%s on %s (%s) - %s\n",
			e.Amount.StringFixed(2), e.CategoryName, e.Description, e.Date.Format("1/2/2006"))
	}

	return b.String(), nil
}
