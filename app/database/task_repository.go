package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskRepo handles database operations for tasks
type TaskRepo struct {
	db *DB
}

var _ TaskRepository = (*TaskRepo)(nil)

func NewTaskRepository(db *DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, title, COALESCE(description, ''), status, priority,
	       COALESCE(category, ''), due_date, COALESCE(tags, '[]'), order_index,
	       created_at, updated_at`

func scanTask(scan func(dest ...any) error) (Task, error) {
	var t Task
	var tags string
	err := scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Category, &t.DueDate, &tags, &t.OrderIndex,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, fmt.Errorf("failed to scan task row: %w", err)
	}

	if t.Tags, err = decodeStrings(tags); err != nil {
		return t, err
	}
	return t, nil
}

// GetAll returns all tasks ordered by position, then due date
func (r *TaskRepo) GetAll() ([]Task, error) {
	rows, err := r.db.Query(`
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY order_index ASC, COALESCE(due_date, created_at) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// GetByID retrieves a task by its id
func (r *TaskRepo) GetByID(id string) (*Task, error) {
	row := r.db.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?
	`, id)

	var t Task
	var tags string
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Category, &t.DueDate, &tags, &t.OrderIndex,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if t.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new task and returns its id
func (r *TaskRepo) Create(task Task) (string, error) {
	tags, err := encodeStrings(task.Tags)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = r.db.Exec(`
		INSERT INTO tasks (id, title, description, status, priority, category,
			due_date, tags, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, task.Title, task.Description, task.Status, task.Priority, task.Category,
		task.DueDate, tags, task.OrderIndex, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}

	return id, nil
}

// Update rewrites a task. Returns ErrNoRowsAffected if no row matched.
func (r *TaskRepo) Update(id string, task Task) error {
	tags, err := encodeStrings(task.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, category = ?,
		    due_date = ?, tags = ?, order_index = ?, updated_at = ?
		WHERE id = ?
	`, task.Title, task.Description, task.Status, task.Priority, task.Category,
		task.DueDate, tags, task.OrderIndex, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// Delete removes a task. Returns ErrNoRowsAffected if no row matched.
func (r *TaskRepo) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}
