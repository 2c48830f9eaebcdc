package db

import (
	"context"
	"errors"
	"io"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	// Fallback glyph and color for categories created implicitly on first use.
	DefaultCategoryIcon  = "📦"
	DefaultCategoryColor = "#95A5A6"
)

// CommonRepo is the repository over categories and expenses.
type CommonRepo struct {
	db orm.DB
}

// NewCommonRepo returns new repository
func NewCommonRepo(db orm.DB) CommonRepo {
	return CommonRepo{db: db}
}

// WithTransaction is a function that wraps CommonRepo with pg.Tx transaction.
func (cr CommonRepo) WithTransaction(tx *pg.Tx) CommonRepo {
	cr.db = tx
	return cr
}

/*** Category ***/

// CategoryByID is a function that returns Category by ID or nil.
func (cr CommonRepo) CategoryByID(ctx context.Context, id int) (*Category, error) {
	c := &Category{ID: id}
	err := cr.db.ModelContext(ctx, c).WherePK().Select()
	if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return c, err
}

// CategoryByName returns Category by case-insensitive exact name match or nil.
func (cr CommonRepo) CategoryByName(ctx context.Context, name string) (*Category, error) {
	c := &Category{}
	err := cr.db.ModelContext(ctx, c).Where("lower(name) = lower(?)", name).Select()
	if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return c, err
}

// Categories returns all categories ordered by name.
func (cr CommonRepo) Categories(ctx context.Context) (categories []Category, err error) {
	err = cr.db.ModelContext(ctx, &categories).Order("name ASC").Select()
	return
}

// DefaultCategories returns the seeded default categories ordered by name.
func (cr CommonRepo) DefaultCategories(ctx context.Context) (categories []Category, err error) {
	err = cr.db.ModelContext(ctx, &categories).Where("is_default").Order("name ASC").Select()
	return
}

// SearchCategories returns categories whose name contains term, case-insensitive,
// ordered by name.
func (cr CommonRepo) SearchCategories(ctx context.Context, term string) (categories []Category, err error) {
	err = cr.db.ModelContext(ctx, &categories).
		Where("name ILIKE ?", "%"+term+"%").
		Order("name ASC").
		Select()
	return
}

// AddCategory adds Category to DB. Icon and color fall back to the generic
// "other" glyph and color when empty.
func (cr CommonRepo) AddCategory(ctx context.Context, category *Category) (*Category, error) {
	if category.Icon == "" {
		category.Icon = DefaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = DefaultCategoryColor
	}

	_, err := cr.db.ModelContext(ctx, category).
		ExcludeColumn(columnCreatedAt).
		Returning("*").
		Insert()

	return category, err
}

// FindOrCreateCategory finds a category by name or creates it, reporting
// whether a new row was created. The insert uses the lower(name) unique index
// with ON CONFLICT DO NOTHING and re-reads, so concurrent callers for the
// same name never produce two rows.
func (cr CommonRepo) FindOrCreateCategory(ctx context.Context, name string) (*Category, bool, error) {
	category := &Category{
		Name:  name,
		Icon:  DefaultCategoryIcon,
		Color: DefaultCategoryColor,
	}

	res, err := cr.db.ModelContext(ctx, category).
		ExcludeColumn(columnCreatedAt).
		OnConflict("(lower(name)) DO NOTHING").
		Insert()
	if err != nil {
		return nil, false, err
	}
	if res.RowsAffected() > 0 {
		return category, true, nil
	}

	// Lost the race or the category already existed, re-read by name.
	existing, err := cr.CategoryByName(ctx, name)
	return existing, false, err
}

// UpdateCategory updates name, icon and color of a Category in DB.
func (cr CommonRepo) UpdateCategory(ctx context.Context, category *Category) (bool, error) {
	res, err := cr.db.ModelContext(ctx, category).
		WherePK().
		Column("name", "icon", "color").
		Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// DeleteCategory removes a category. It returns false without error when the
// category does not exist, is a default category or is referenced by at least
// one expense.
func (cr CommonRepo) DeleteCategory(ctx context.Context, id int) (bool, error) {
	category, err := cr.CategoryByID(ctx, id)
	if err != nil {
		return false, err
	}
	if category == nil || category.IsDefault {
		return false, nil
	}

	referenced, err := cr.db.ModelContext(ctx, (*Expense)(nil)).
		Where("category_id = ?", id).
		Count()
	if err != nil {
		return false, err
	}
	if referenced > 0 {
		return false, nil
	}

	res, err := cr.db.ModelContext(ctx, (*Category)(nil)).
		Where("id = ?", id).
		Delete()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// CategoryUsageStats returns per-category expense count and total, ordered by
// total descending. The outer join keeps unused categories in the report.
func (cr CommonRepo) CategoryUsageStats(ctx context.Context) ([]CategoryUsage, error) {
	var stats []CategoryUsage
	_, err := cr.db.QueryContext(ctx, &stats, `
		SELECT c.name, COUNT(e.id) AS count, COALESCE(SUM(e.amount), 0) AS total
		FROM categories c
		LEFT JOIN expenses e ON c.id = e.category_id
		GROUP BY c.id, c.name
		ORDER BY total DESC`)

	return stats, err
}
