package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is an expense category. Name uniqueness is case-insensitive,
// enforced by a unique index on lower(name).
type Category struct {
	tableName struct{} `pg:"categories,alias:c,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	Name      string    `pg:"name,use_zero"`
	Icon      string    `pg:"icon"`
	Color     string    `pg:"color"`
	IsDefault bool      `pg:"is_default,use_zero"`
	CreatedAt time.Time `pg:"created_at"`
}

// Expense is a stored expense record. CategoryName keeps the label the user
// typed, so historical records survive category renames.
type Expense struct {
	tableName struct{} `pg:"expenses,alias:e,discard_unknown_columns"`

	ID           int             `pg:"id,pk"`
	Amount       decimal.Decimal `pg:"amount,use_zero"`
	CategoryID   *int            `pg:"category_id"`
	CategoryName string          `pg:"category_name,use_zero"`
	Description  string          `pg:"description,use_zero"`
	Date         time.Time       `pg:"date,use_zero"`
	UserID       int64           `pg:"user_id,use_zero"`
	MessageID    int64           `pg:"message_id,use_zero"`
	ChatID       int64           `pg:"chat_id,use_zero"`
	TopicID      *int64          `pg:"topic_id"`
	CreatedAt    time.Time       `pg:"created_at"`

	Category *Category `pg:"rel:has-one"`
}

// CategoryUsage is one row of the category usage report. Categories with no
// expenses appear with zero Count and Total.
type CategoryUsage struct {
	Name  string          `pg:"name"`
	Count int             `pg:"count"`
	Total decimal.Decimal `pg:"total"`
}

const (
	columnCreatedAt = "created_at"
)

// dayBounds returns the inclusive bounds of d's calendar day in d's location.
func dayBounds(d time.Time) (start, end time.Time) {
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	end = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, d.Location())
	return start, end
}
