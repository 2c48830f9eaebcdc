package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// defaultCategories is the seed set present in every deployment. These rows
// can never be deleted.
var defaultCategories = []Category{
	{Name: "Food & Dining", Icon: "🍽️", Color: "#FF6B6B", IsDefault: true},
	{Name: "Transportation", Icon: "🚗", Color: "#4ECDC4", IsDefault: true},
	{Name: "Shopping", Icon: "🛍️", Color: "#45B7D1", IsDefault: true},
	{Name: "Entertainment", Icon: "🎬", Color: "#96CEB4", IsDefault: true},
	{Name: "Healthcare", Icon: "🏥", Color: "#FFEAA7", IsDefault: true},
	{Name: "Utilities", Icon: "⚡", Color: "#DDA0DD", IsDefault: true},
	{Name: "Housing", Icon: "🏠", Color: "#98D8C8", IsDefault: true},
	{Name: "Education", Icon: "📚", Color: "#F7DC6F", IsDefault: true},
	{Name: "Travel", Icon: "✈️", Color: "#BB8FCE", IsDefault: true},
	{Name: "Personal Care", Icon: "💄", Color: "#F8C471", IsDefault: true},
	{Name: "Gifts", Icon: "🎁", Color: "#E74C3C", IsDefault: true},
	{Name: "Insurance", Icon: "🛡️", Color: "#3498DB", IsDefault: true},
	{Name: "Investments", Icon: "📈", Color: "#2ECC71", IsDefault: true},
	{Name: "Subscriptions", Icon: "📱", Color: "#9B59B6", IsDefault: true},
	{Name: "Other", Icon: "📦", Color: "#95A5A6", IsDefault: true},
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		icon VARCHAR(10),
		color VARCHAR(7),
		is_default BOOLEAN DEFAULT false,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		amount DECIMAL(10,2) NOT NULL,
		category_id INTEGER REFERENCES categories(id),
		category_name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMP NOT NULL,
		user_id BIGINT NOT NULL,
		message_id BIGINT NOT NULL,
		chat_id BIGINT NOT NULL,
		topic_id BIGINT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	// lower(name) index gives case-insensitive uniqueness, insert conflicts
	// target it in FindOrCreateCategory.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories (lower(name))`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_chat_id ON expenses (chat_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses (category_id)`,
}

// CreateTables creates the schema and seeds default categories. Safe to run
// on every startup.
func (db DB) CreateTables(ctx context.Context) error {
	return db.runInTransaction(ctx, func(tx *pg.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}

		for _, category := range defaultCategories {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO categories (name, icon, color, is_default)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (lower(name)) DO NOTHING`,
				category.Name, category.Icon, category.Color, category.IsDefault)
			if err != nil {
				return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
			}
		}

		return nil
	})
}
