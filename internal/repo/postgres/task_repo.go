package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akulikov/tasklist/internal/domain/model"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) ListByList(ctx context.Context, listID string) ([]model.Task, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, list_id, completed, created_at, updated_at
FROM tasks
WHERE list_id = $1
ORDER BY created_at
`, listID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.ListID, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if r.pool == nil {
		return model.Task{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO tasks (id, title, list_id, completed, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id, title, list_id, completed, created_at, updated_at
`, task.ID, task.Title, task.ListID, task.Completed).Scan(
		&task.ID, &task.Title, &task.ListID, &task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

func (r *TaskRepo) Update(ctx context.Context, taskID, listID string, title *string, completed *bool) (model.Task, error) {
	if r.pool == nil {
		return model.Task{}, fmt.Errorf("postgres pool is nil")
	}

	var task model.Task
	err := r.pool.QueryRow(ctx, `
UPDATE tasks
SET title = COALESCE($3, title),
	completed = COALESCE($4, completed),
	updated_at = NOW()
WHERE id = $1 AND list_id = $2
RETURNING id, title, list_id, completed, created_at, updated_at
`, taskID, listID, title, completed).Scan(
		&task.ID, &task.Title, &task.ListID, &task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func (r *TaskRepo) Delete(ctx context.Context, taskID, listID string) (model.Task, error) {
	if r.pool == nil {
		return model.Task{}, fmt.Errorf("postgres pool is nil")
	}

	var task model.Task
	err := r.pool.QueryRow(ctx, `
DELETE FROM tasks
WHERE id = $1 AND list_id = $2
RETURNING id, title, list_id, completed, created_at, updated_at
`, taskID, listID).Scan(
		&task.ID, &task.Title, &task.ListID, &task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("delete task: %w", err)
	}

	return task, nil
}
