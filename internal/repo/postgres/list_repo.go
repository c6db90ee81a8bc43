package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akulikov/tasklist/internal/domain/model"
)

var ErrListNotFound = errors.New("list not found")

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

func (r *ListRepo) ListByUser(ctx context.Context, userID string) ([]model.List, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, user_id, created_at, updated_at
FROM lists
WHERE user_id = $1
ORDER BY created_at
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	lists := []model.List{}
	for rows.Next() {
		var list model.List
		if err := rows.Scan(&list.ID, &list.Title, &list.UserID, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	return lists, nil
}

func (r *ListRepo) Create(ctx context.Context, list model.List) (model.List, error) {
	if r.pool == nil {
		return model.List{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO lists (id, title, user_id, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
RETURNING id, title, user_id, created_at, updated_at
`, list.ID, list.Title, list.UserID).Scan(
		&list.ID, &list.Title, &list.UserID, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		return model.List{}, fmt.Errorf("insert list: %w", err)
	}

	return list, nil
}

// FindOwned returns the list only when it belongs to userID.
func (r *ListRepo) FindOwned(ctx context.Context, listID, userID string) (model.List, error) {
	if r.pool == nil {
		return model.List{}, fmt.Errorf("postgres pool is nil")
	}

	var list model.List
	err := r.pool.QueryRow(ctx, `
SELECT id, title, user_id, created_at, updated_at
FROM lists
WHERE id = $1 AND user_id = $2
`, listID, userID).Scan(&list.ID, &list.Title, &list.UserID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.List{}, ErrListNotFound
		}
		return model.List{}, fmt.Errorf("find list: %w", err)
	}

	return list, nil
}

func (r *ListRepo) UpdateOwned(ctx context.Context, listID, userID, title string) (model.List, error) {
	if r.pool == nil {
		return model.List{}, fmt.Errorf("postgres pool is nil")
	}

	var list model.List
	err := r.pool.QueryRow(ctx, `
UPDATE lists
SET title = $3, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING id, title, user_id, created_at, updated_at
`, listID, userID, title).Scan(&list.ID, &list.Title, &list.UserID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.List{}, ErrListNotFound
		}
		return model.List{}, fmt.Errorf("update list: %w", err)
	}

	return list, nil
}

// DeleteOwned removes the list and its tasks in one transaction.
func (r *ListRepo) DeleteOwned(ctx context.Context, listID, userID string) (model.List, error) {
	if r.pool == nil {
		return model.List{}, fmt.Errorf("postgres pool is nil")
	}

	var list model.List
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
DELETE FROM lists
WHERE id = $1 AND user_id = $2
RETURNING id, title, user_id, created_at, updated_at
`, listID, userID).Scan(&list.ID, &list.Title, &list.UserID, &list.CreatedAt, &list.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrListNotFound
			}
			return fmt.Errorf("delete list: %w", err)
		}

		if _, err := tx.Exec(ctx, `
DELETE FROM tasks
WHERE list_id = $1
`, listID); err != nil {
			return fmt.Errorf("delete list tasks: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.List{}, err
	}

	return list, nil
}
