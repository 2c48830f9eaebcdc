package db

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/shopspring/decimal"
)

/*** Expense ***/

// AddExpense adds Expense to DB.
func (cr CommonRepo) AddExpense(ctx context.Context, expense *Expense) (*Expense, error) {
	_, err := cr.db.ModelContext(ctx, expense).
		ExcludeColumn(columnCreatedAt).
		Returning("*").
		Insert()

	return expense, err
}

// ExpensesByDate returns expenses whose stored date falls within the calendar
// day of the given date, oldest first.
func (cr CommonRepo) ExpensesByDate(ctx context.Context, date time.Time) ([]Expense, error) {
	start, end := dayBounds(date)
	return cr.ExpensesByDateRange(ctx, start, end)
}

// ExpensesByDateRange returns expenses with date in [start, end], oldest
// first. Bounds are taken as given, no day widening.
func (cr CommonRepo) ExpensesByDateRange(ctx context.Context, start, end time.Time) (expenses []Expense, err error) {
	err = cr.db.ModelContext(ctx, &expenses).
		Where("date >= ?", start).
		Where("date <= ?", end).
		Order("date ASC").
		Select()
	return
}

// ExpensesByCategory returns expenses matching the stored category label,
// case-insensitive, newest first. Matching is on the label the user typed,
// not on the resolved category id.
func (cr CommonRepo) ExpensesByCategory(ctx context.Context, name string) (expenses []Expense, err error) {
	err = cr.db.ModelContext(ctx, &expenses).
		Where("lower(category_name) = lower(?)", name).
		Order("date DESC").
		Select()
	return
}

// ExpensesByChat returns expenses for a chat, newest first.
func (cr CommonRepo) ExpensesByChat(ctx context.Context, chatID int64) (expenses []Expense, err error) {
	err = cr.db.ModelContext(ctx, &expenses).
		Where("chat_id = ?", chatID).
		Order("date DESC").
		Select()
	return
}

// ExpensesByTopic returns expenses for a forum topic, newest first.
func (cr CommonRepo) ExpensesByTopic(ctx context.Context, topicID int64) (expenses []Expense, err error) {
	err = cr.db.ModelContext(ctx, &expenses).
		Where("topic_id = ?", topicID).
		Order("date DESC").
		Select()
	return
}

// AllExpenses returns all stored expenses, newest first.
func (cr CommonRepo) AllExpenses(ctx context.Context) (expenses []Expense, err error) {
	err = cr.db.ModelContext(ctx, &expenses).
		Order("date DESC").
		Select()
	return
}

// CountExpenses returns total number of stored expenses.
func (cr CommonRepo) CountExpenses(ctx context.Context) (int, error) {
	return cr.db.ModelContext(ctx, (*Expense)(nil)).Count()
}

// ClearAll removes every stored expense and returns the number removed.
func (cr CommonRepo) ClearAll(ctx context.Context) (int, error) {
	res, err := cr.db.ModelContext(ctx, (*Expense)(nil)).
		Where("TRUE").
		Delete()
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

// ClearForDate removes expenses within the calendar day of the given date and
// returns the number removed.
func (cr CommonRepo) ClearForDate(ctx context.Context, date time.Time) (int, error) {
	start, end := dayBounds(date)
	return cr.ClearForDateRange(ctx, start, end)
}

// ClearForDateRange removes expenses with date in [start, end] and returns
// the number removed.
func (cr CommonRepo) ClearForDateRange(ctx context.Context, start, end time.Time) (int, error) {
	res, err := cr.db.ModelContext(ctx, (*Expense)(nil)).
		Where("date >= ?", start).
		Where("date <= ?", end).
		Delete()
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

// TotalForDateRange returns the summed amount of expenses with date in
// [start, end], zero when there are none.
func (cr CommonRepo) TotalForDateRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	_, err := cr.db.QueryOneContext(ctx, pg.Scan(&total), `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date >= ? AND date <= ?`, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
