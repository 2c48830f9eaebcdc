package telegram

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abinig29/expense-bot/pkg/db"
	"github.com/abinig29/expense-bot/pkg/spend"
)

const (
	dateFormatLong  = "Monday, January 2, 2006"
	dateFormatShort = "Jan 2, 2006"
)

// formatDailySummary renders a daily summary. Breakdown entries are shown
// highest amount first.
func formatDailySummary(summary spend.DailySummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *Daily Expense Summary*\n")
	fmt.Fprintf(&b, "📅 *Date:* %s\n", summary.Date.Format(dateFormatLong))
	fmt.Fprintf(&b, "💰 *Total:* $%s\n\n", summary.TotalAmount.StringFixed(2))

	if len(summary.Expenses) == 0 {
		b.WriteString("No expenses recorded for this day.")
		return b.String()
	}

	b.WriteString("📋 *Category Breakdown:*\n")

	breakdown := make([]spend.CategoryAmount, len(summary.Breakdown))
	copy(breakdown, summary.Breakdown)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})

	for _, entry := range breakdown {
		percentage := entry.Amount.Div(summary.TotalAmount).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(&b, "• %s: $%s (%s%%)\n",
			entry.Name, entry.Amount.StringFixed(2), percentage.StringFixed(1))
	}

	b.WriteString("\n📝 *All Expenses:*\n")
	for i, expense := range summary.Expenses {
		fmt.Fprintf(&b, "%d. $%s - %s\n", i+1, expense.Amount.StringFixed(2), expense.CategoryName)
	}

	return b.String()
}

func formatExpenseAdded(expense *db.Expense) string {
	return fmt.Sprintf(
		"✅ *Expense Added Successfully!*\n\n"+
			"💰 Amount: $%s\n"+
			"📂 Category: %s\n"+
			"📅 Date: %s\n\n"+
			"Use /summary to see today's total.",
		expense.Amount.StringFixed(2),
		expense.CategoryName,
		expense.Date.Format(dateFormatShort),
	)
}

// formatExpensesAdded renders the multi-record confirmation, noting skipped
// blocks when some failed to parse.
func formatExpensesAdded(expenses []db.Expense, skipped int) string {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ *Multiple Expenses Added Successfully!*\n\n")
	fmt.Fprintf(&b, "📊 Total Amount: $%s\n", total.StringFixed(2))
	fmt.Fprintf(&b, "📝 Number of Expenses: %d\n", len(expenses))
	if skipped > 0 {
		fmt.Fprintf(&b, "⚠️ Skipped blocks (invalid format): %d\n", skipped)
	}

	b.WriteString("\n📋 *Expenses Added:*\n")
	for i, expense := range expenses {
		fmt.Fprintf(&b, "%d. $%s - %s\n", i+1, expense.Amount.StringFixed(2), expense.CategoryName)
	}

	b.WriteString("\nUse /summary to see today's total.")
	return b.String()
}

func formatStats(stats spend.OverallStats) string {
	return fmt.Sprintf(
		"📊 *Overall Statistics*\n\n"+
			"💰 Total Expenses: $%s\n"+
			"📂 Total Categories: %d\n"+
			"📅 This Month: $%s\n"+
			"📝 Total Entries: %d",
		stats.TotalAmount.StringFixed(2),
		stats.CategoryCount,
		stats.ThisMonthTotal.StringFixed(2),
		stats.EntryCount,
	)
}

func formatCategoryUsage(usage []db.CategoryUsage) string {
	var b strings.Builder
	b.WriteString("📂 *Category Usage*\n\n")

	for _, u := range usage {
		fmt.Fprintf(&b, "• %s: %d entries, $%s\n", u.Name, u.Count, u.Total.StringFixed(2))
	}
	if len(usage) == 0 {
		b.WriteString("No categories found.")
	}

	return strings.TrimSpace(b.String())
}

func formatClearPrompt(p *PendingClear) string {
	var scope string
	switch p.Scope {
	case ClearScopeDay:
		scope = fmt.Sprintf("all expenses for %s", p.Date.Format(dateFormatShort))
	case ClearScopeRange:
		scope = fmt.Sprintf("all expenses from %s to %s",
			p.Start.Format(dateFormatShort), p.End.Format(dateFormatShort))
	default:
		scope = "ALL expenses"
	}

	return fmt.Sprintf(
		"⚠️ *Confirm Clear Action*\n\n"+
			"Are you sure you want to clear %s?\n\n"+
			"This action cannot be undone!\n\n"+
			`Reply with "yes" to confirm or "no" to cancel.`,
		scope,
	)
}

func formatClearResult(count int, p *PendingClear) string {
	switch p.Scope {
	case ClearScopeDay:
		return fmt.Sprintf(
			"🗑️ *Cleared %d expenses*\n\n📅 Date: %s\n✅ All expenses for this date have been removed.",
			count, p.Date.Format(dateFormatShort))
	case ClearScopeRange:
		return fmt.Sprintf(
			"🗑️ *Cleared %d expenses*\n\n📅 Date range: %s to %s\n✅ All expenses in this range have been removed.",
			count, p.Start.Format(dateFormatShort), p.End.Format(dateFormatShort))
	default:
		return fmt.Sprintf(
			"🗑️ *Cleared all expenses*\n\n📊 Total removed: %d expenses\n✅ All stored expenses have been cleared.",
			count)
	}
}

func formatSettings(cfg Config) string {
	joinIDs := func(ids []int64) string {
		if len(ids) == 0 {
			return "All"
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return strings.Join(parts, ", ")
	}

	confirmations := "❌ Disabled"
	if cfg.SendConfirmations {
		confirmations = "✅ Enabled"
	}

	return fmt.Sprintf(
		"⚙️ *Bot Settings*\n\n"+
			"📨 Confirmations: %s\n"+
			"💬 Allowed chats: %s\n"+
			"📋 Allowed topics: %s\n\n"+
			"💡 Use /help for available commands.",
		confirmations, joinIDs(cfg.AllowedChatIDs), joinIDs(cfg.AllowedTopicIDs),
	)
}

func formatHelp() string {
	return "🤖 *Expense Tracker Bot Help*\n\n" +
		"*How to add expenses:*\n" +
		"Send a message in this format:\n" +
		"```\n" +
		"amount:300\n" +
		"category: hair remover\n" +
		"date:02 aug\n" +
		"```\n" +
		"Separate several expenses with blank lines to add them at once.\n\n" +
		"*Available commands:*\n" +
		"• /summary - Get today's expense summary\n" +
		"• /summary YYYY-MM-DD - Get summary for specific date\n" +
		"• /stats - Show overall statistics\n" +
		"• /categories - Show category usage\n" +
		"• /clear - Clear all expenses\n" +
		"• /clear YYYY-MM-DD - Clear expenses for specific date\n" +
		"• /clear YYYY-MM-DD YYYY-MM-DD - Clear expenses for date range\n" +
		"• /settings - Show current bot settings\n" +
		"• /cancel - Cancel a pending action\n" +
		"• /help - Show this help message\n\n" +
		"*Notes:*\n" +
		"• Date format: DD MMM (e.g., \"02 aug\", \"15 dec\")\n" +
		"• If no year is specified, current year is assumed\n" +
		"• An optional description: line is stored with the expense\n" +
		"• Use /clear carefully - this action cannot be undone"
}

func formatError(message string) string {
	return fmt.Sprintf("❌ *Error*\n%s\n\nUse /help for instructions.", message)
}

func formatDebug(count int, today time.Time) string {
	return fmt.Sprintf(
		"🔍 *Debug Information*\n\n📊 Total Expenses: %d\n📅 Today's Date: %s",
		count, today.Format("2006-01-02"),
	)
}

// sanitizeAdvice strips markdown constructs that Telegram's parser chokes on
// and clamps the reply length.
func sanitizeAdvice(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			break
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			text = text[:start]
			break
		}
		text = text[:start] + text[start+3+end+3:]
	}

	text = strings.ReplaceAll(text, "**", "*")
	if len(text) > 4000 {
		text = text[:4000]
	}

	return strings.TrimSpace(text)
}
