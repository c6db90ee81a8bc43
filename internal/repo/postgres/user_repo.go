package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akulikov/tasklist/internal/domain/model"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
)

// UserRepo is the credential store: user rows plus their session list.
// Sessions live in their own table, so concurrent logins append independent
// rows instead of racing a single document.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return model.User{}, authsvc.ErrInvalidInput
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO users (id, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
RETURNING id, email, password_hash, created_at, updated_at
`, user.ID, user.Email, user.PasswordHash).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, authsvc.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, created_at, updated_at
FROM users
WHERE email = $1
`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, authsvc.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}

	user.Sessions, err = r.loadSessions(ctx, user.ID)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, created_at, updated_at
FROM users
WHERE id = $1
`, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, authsvc.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	user.Sessions, err = r.loadSessions(ctx, user.ID)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

// FindByIDAndToken returns the user only when its session list contains the
// token. Expiry is deliberately not filtered here; the caller checks it.
func (r *UserRepo) FindByIDAndToken(ctx context.Context, id, token string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT u.id, u.email, u.password_hash, u.created_at, u.updated_at
FROM users u
JOIN user_sessions s ON s.user_id = u.id
WHERE u.id = $1 AND s.token = $2
`, id, token).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, authsvc.ErrSessionNotFound
		}
		return model.User{}, fmt.Errorf("find user by id and token: %w", err)
	}

	user.Sessions, err = r.loadSessions(ctx, user.ID)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepo) AppendSession(ctx context.Context, userID string, session model.Session) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(session.Token) == "" {
		return authsvc.ErrInvalidInput
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO user_sessions (user_id, token, expires_at, created_at)
VALUES ($1, $2, $3, NOW())
`, userID, session.Token, session.ExpiresAt); err != nil {
		return fmt.Errorf("append session: %w", err)
	}

	return nil
}

// DeleteExpiredSessions removes sessions whose expiry is at or before cutoff
// (epoch seconds). Validation rejects them lazily anyway; this just stops the
// table from growing without bound.
func (r *UserRepo) DeleteExpiredSessions(ctx context.Context, cutoff int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM user_sessions
WHERE expires_at <= $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *UserRepo) loadSessions(ctx context.Context, userID string) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx, `
SELECT token, expires_at
FROM user_sessions
WHERE user_id = $1
ORDER BY created_at
`, userID)
	if err != nil {
		return nil, fmt.Errorf("load user sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var session model.Session
		if err := rows.Scan(&session.Token, &session.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan user session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user sessions: %w", err)
	}

	return sessions, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
