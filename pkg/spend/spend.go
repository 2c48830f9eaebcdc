package spend

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"

	"github.com/abinig29/expense-bot/pkg/db"
)

// Manager is the expense domain service: it resolves categories, persists
// parsed drafts and answers aggregate queries.
type Manager struct {
	cr  db.CommonRepo
	db  db.DB
	log embedlog.Logger
}

func NewManager(dbc db.DB, log embedlog.Logger) *Manager {
	return &Manager{
		cr:  db.NewCommonRepo(dbc),
		db:  dbc,
		log: log,
	}
}

// Meta carries the opaque transport identifiers attached to an inbound
// message. The core never interprets them.
type Meta struct {
	UserID    int64
	ChatID    int64
	MessageID int64
	TopicID   *int64
}

// AddExpense resolves the draft's category label and persists the expense.
// The typed label is stored alongside the resolved id so records keep their
// historical label even if the category is later renamed. The bool reports
// whether a new category was created for the label.
func (m *Manager) AddExpense(ctx context.Context, draft Draft, meta Meta) (*db.Expense, bool, error) {
	category, created, err := m.cr.FindOrCreateCategory(ctx, draft.Category)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find or create category: %w", err)
	}
	if created {
		m.log.Print(ctx, "category created", "category_id", category.ID, "name", category.Name)
	}

	expense := &db.Expense{
		Amount:       draft.Amount,
		CategoryID:   &category.ID,
		CategoryName: draft.Category,
		Description:  draft.Description,
		Date:         draft.Date,
		UserID:       meta.UserID,
		MessageID:    meta.MessageID,
		ChatID:       meta.ChatID,
		TopicID:      meta.TopicID,
	}

	stored, err := m.cr.AddExpense(ctx, expense)
	if err != nil {
		return nil, created, fmt.Errorf("failed to create expense: %w", err)
	}

	m.log.Print(ctx, "expense created",
		"expense_id", stored.ID,
		"amount", stored.Amount,
		"category", stored.CategoryName,
		"user_id", meta.UserID,
	)

	return stored, created, nil
}

// AddExpenses persists each draft independently; each insert is durable on
// its own, there is no ordering or transactional guarantee across drafts.
// The int counts how many new categories were created along the way.
func (m *Manager) AddExpenses(ctx context.Context, drafts []Draft, meta Meta) ([]db.Expense, int, error) {
	var newCategories int
	expenses := make([]db.Expense, 0, len(drafts))
	for _, draft := range drafts {
		expense, created, err := m.AddExpense(ctx, draft, meta)
		if err != nil {
			return expenses, newCategories, err
		}
		if created {
			newCategories++
		}
		expenses = append(expenses, *expense)
	}

	return expenses, newCategories, nil
}

// DailySummary fetches the expenses of the given calendar day and aggregates
// them.
func (m *Manager) DailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	expenses, err := m.cr.ExpensesByDate(ctx, date)
	if err != nil {
		return DailySummary{}, fmt.Errorf("failed to get expenses: %w", err)
	}

	return BuildDailySummary(date, expenses), nil
}

// OverallStats re-scans all stored expenses and computes overall statistics.
func (m *Manager) OverallStats(ctx context.Context) (OverallStats, error) {
	expenses, err := m.cr.AllExpenses(ctx)
	if err != nil {
		return OverallStats{}, fmt.Errorf("failed to get expenses: %w", err)
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := m.cr.TotalForDateRange(ctx, firstOfMonth, now)
	if err != nil {
		return OverallStats{}, fmt.Errorf("failed to get month total: %w", err)
	}

	return BuildOverallStats(expenses, thisMonth), nil
}

// AllExpenses returns every stored expense, newest first.
func (m *Manager) AllExpenses(ctx context.Context) ([]db.Expense, error) {
	return m.cr.AllExpenses(ctx)
}

// CountExpenses returns the number of stored expenses.
func (m *Manager) CountExpenses(ctx context.Context) (int, error) {
	return m.cr.CountExpenses(ctx)
}

// ClearAll removes every expense and returns the number removed.
func (m *Manager) ClearAll(ctx context.Context) (int, error) {
	count, err := m.cr.ClearAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expenses: %w", err)
	}

	m.log.Print(ctx, "expenses cleared", "count", count)

	return count, nil
}

// ClearForDate removes the expenses of one calendar day and returns the
// number removed.
func (m *Manager) ClearForDate(ctx context.Context, date time.Time) (int, error) {
	count, err := m.cr.ClearForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expenses: %w", err)
	}

	m.log.Print(ctx, "expenses cleared", "count", count, "date", date.Format("2006-01-02"))

	return count, nil
}

// ClearForDateRange removes expenses in [start, end] and returns the number
// removed.
func (m *Manager) ClearForDateRange(ctx context.Context, start, end time.Time) (int, error) {
	count, err := m.cr.ClearForDateRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expenses: %w", err)
	}

	m.log.Print(ctx, "expenses cleared", "count", count,
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))

	return count, nil
}

// Categories returns all known categories ordered by name.
func (m *Manager) Categories(ctx context.Context) ([]db.Category, error) {
	return m.cr.Categories(ctx)
}

// CategoryUsage returns per-category usage statistics including unused
// categories.
func (m *Manager) CategoryUsage(ctx context.Context) ([]db.CategoryUsage, error) {
	return m.cr.CategoryUsageStats(ctx)
}

// DeleteCategory removes a non-default, unreferenced category. Returns false
// when the guard rejects the delete.
func (m *Manager) DeleteCategory(ctx context.Context, id int) (bool, error) {
	return m.cr.DeleteCategory(ctx, id)
}

// TotalForDateRange returns the summed amount over [start, end].
func (m *Manager) TotalForDateRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return m.cr.TotalForDateRange(ctx, start, end)
}
