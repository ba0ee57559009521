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

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
	title TEXT NOT NULL,
	description TEXT NULL,
	due_date TEXT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL DEFAULT 'Medium',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_tasks_category_id ON tasks(category_id);
`

const selectTasks = `
SELECT t.id, t.user_id, t.category_id, c.name, t.title, t.description, t.due_date, t.completed, t.priority, t.created_at, t.updated_at
FROM tasks t
JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id
`

var (
	errTaskNotFound    = domain.NotFound("task not found")
	errInvalidCategory = domain.Validation("category not found")
)

type TaskRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTaskRepository(db *sql.DB, timeout time.Duration) repository.TaskRepository {
	return &TaskRepository{db: db, timeout: timeout}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

// List returns the owner's tasks, newest first. The owner condition is always the first
// condition of the query; each active filter appends one more.
func (r *TaskRepository) List(ctx context.Context, owner int64, filter repository.TaskFilter) ([]domain.Task, error) {
	where := newWhere("t.user_id = ?", owner)

	switch filter.Status {
	case domain.TaskStatusAny:
	case domain.TaskStatusCompleted:
		where.and("t.completed = ?", true)
	case domain.TaskStatusPending:
		where.and("t.completed = ?", false)
	default:
		return nil, domain.Validation("status must be completed or pending")
	}
	if filter.Category != "" {
		where.and("c.name = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.and(lowerFunc+`(t.title) LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(search)))
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := selectTasks + where.String() + "\nORDER BY t.created_at DESC, t.id DESC"
	rows, err := r.db.QueryContext(ctx, query, where.Args()...)
	if err != nil {
		return nil, storageErr(ctx, "query tasks", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(ctx, rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ctx, "iterate tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, owner, id int64) (*domain.Task, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return getTask(ctx, r.db, owner, id)
}

func (r *TaskRepository) Create(ctx context.Context, owner int64, fields domain.TaskFields) (*domain.Task, error) {
	if err := fields.Normalize(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(ctx, "begin tx", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if err := ensureOwnedCategory(ctx, tx, owner, fields.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
INSERT INTO tasks (user_id, category_id, title, description, due_date, completed, priority, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		owner,
		fields.CategoryID,
		fields.Title,
		nullString(fields.Description),
		nullDate(fields.DueDate),
		fields.Completed,
		string(fields.Priority),
		now,
		now,
	)
	if err != nil {
		return nil, storageErr(ctx, "insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr(ctx, "task last insert id", err)
	}

	task, err := getTask(ctx, tx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr(ctx, "commit task", err)
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, owner, id int64, fields domain.TaskFields) (*domain.Task, error) {
	if err := fields.Normalize(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(ctx, "begin tx", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if err := ensureOwnedCategory(ctx, tx, owner, fields.CategoryID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
UPDATE tasks
SET title=?, description=?, due_date=?, category_id=?, completed=?, priority=?, updated_at=?
WHERE id=? AND user_id=?`,
		fields.Title,
		nullString(fields.Description),
		nullDate(fields.DueDate),
		fields.CategoryID,
		fields.Completed,
		string(fields.Priority),
		time.Now().UTC(),
		id,
		owner,
	)
	if err != nil {
		return nil, storageErr(ctx, "update task", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, storageErr(ctx, "task update rows affected", err)
	}
	if aff == 0 {
		return nil, errTaskNotFound
	}

	task, err := getTask(ctx, tx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr(ctx, "commit task update", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, owner, id int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=? AND user_id=?`, id, owner)
	if err != nil {
		return storageErr(ctx, "delete task", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return storageErr(ctx, "task delete rows affected", err)
	}
	if aff == 0 {
		return errTaskNotFound
	}
	return nil
}

// ensureOwnedCategory resolves the category inside the owner's scope; another owner's id is
// reported exactly like an unknown one.
func ensureOwnedCategory(ctx context.Context, q rowQueryer, owner, categoryID int64) error {
	if _, err := getCategory(ctx, q, owner, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errInvalidCategory
		}
		return err
	}
	return nil
}

func getTask(ctx context.Context, q rowQueryer, owner, id int64) (*domain.Task, error) {
	row := q.QueryRowContext(ctx, selectTasks+"WHERE t.id = ? AND t.user_id = ?", id, owner)
	return scanTask(ctx, row)
}

func scanTask(ctx context.Context, scanner interface {
	Scan(dest ...any) error
}) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		dueDate     sql.NullString
		priority    string
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := scanner.Scan(
		&task.ID,
		&task.UserID,
		&task.CategoryID,
		&task.CategoryName,
		&task.Title,
		&description,
		&dueDate,
		&task.Completed,
		&priority,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errTaskNotFound
		}
		return nil, storageErr(ctx, "scan task", err)
	}

	task.Priority = domain.Priority(priority)
	task.CreatedAt = createdAt.UTC()
	task.UpdatedAt = updatedAt.UTC()
	if description.Valid {
		v := description.String
		task.Description = &v
	}
	if dueDate.Valid && dueDate.String != "" {
		d, err := time.Parse(domain.DateLayout, dueDate.String)
		if err != nil {
			return nil, storageErr(ctx, "parse due date", err)
		}
		task.DueDate = &d
	}

	return &task, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}
