package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE (user_id, name)
);
`

var (
	errCategoryNotFound  = domain.NotFound("category not found")
	errCategoryDuplicate = domain.Conflict("category with this name already exists")
	errCategoryInUse     = domain.Conflict("category is in use by tasks")
	errCategoryNameEmpty = domain.Validation("category name is required")
)

type CategoryRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewCategoryRepository(db *sql.DB, timeout time.Duration) repository.CategoryRepository {
	return &CategoryRepository{db: db, timeout: timeout}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, owner int64) ([]domain.Category, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, created_at
FROM categories
WHERE user_id = ?
ORDER BY name ASC, id ASC`,
		owner,
	)
	if err != nil {
		return nil, storageErr(ctx, "query categories", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(ctx, rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ctx, "iterate categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, owner int64, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errCategoryNameEmpty
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	category := &domain.Category{
		UserID:    owner,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO categories (user_id, name, created_at)
VALUES (?, ?, ?)`,
		category.UserID,
		category.Name,
		category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errCategoryDuplicate
		}
		return nil, storageErr(ctx, "insert category", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr(ctx, "category last insert id", err)
	}
	category.ID = id
	return category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, owner, id int64, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errCategoryNameEmpty
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(ctx, "begin tx", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, `
UPDATE categories
SET name = ?
WHERE id = ? AND user_id = ?`,
		name,
		id,
		owner,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errCategoryDuplicate
		}
		return nil, storageErr(ctx, "update category", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, storageErr(ctx, "category update rows affected", err)
	}
	if aff == 0 {
		return nil, errCategoryNotFound
	}

	category, err := getCategory(ctx, tx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr(ctx, "commit category update", err)
	}
	return category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, owner, id int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, owner)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errCategoryInUse
		}
		return storageErr(ctx, "delete category", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return storageErr(ctx, "category delete rows affected", err)
	}
	if aff == 0 {
		return errCategoryNotFound
	}
	return nil
}

func scanCategory(ctx context.Context, row interface {
	Scan(dest ...any) error
}) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errCategoryNotFound
		}
		return nil, storageErr(ctx, "scan category", err)
	}
	category.CreatedAt = category.CreatedAt.UTC()
	return &category, nil
}

func getCategory(ctx context.Context, q rowQueryer, owner, id int64) (*domain.Category, error) {
	row := q.QueryRowContext(ctx, `
SELECT id, user_id, name, created_at
FROM categories
WHERE id = ? AND user_id = ?`,
		id,
		owner,
	)
	return scanCategory(ctx, row)
}
