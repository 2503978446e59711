package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafe-site/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Content:  &PostgresContent{pool: pool},
		Users:    &PostgresUsers{pool: pool},
		Sessions: &PostgresSessions{pool: pool},
	}
}

type PostgresContent struct{ pool *pgxpool.Pool }

func (r *PostgresContent) Get(ctx context.Context) (*models.CafeData, error) {
	var body []byte
	err := r.pool.QueryRow(ctx, `SELECT body FROM site_documents WHERE key = $1`, ContentKey).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var data models.CafeData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", ContentKey, ErrCorrupt, err)
	}
	return &data, nil
}

func (r *PostgresContent) Replace(ctx context.Context, data *models.CafeData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ContentKey, err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO site_documents (key, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = now()`,
		ContentKey, body,
	)
	return err
}

func (r *PostgresContent) Delete(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM site_documents WHERE key = $1`, ContentKey)
	return err
}

type PostgresUsers struct{ pool *pgxpool.Pool }

const userColumns = `id, first_name, last_name, email, password_hash, created_at, last_login, is_active`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastLogin, &u.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsers) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM site_users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PostgresUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM site_users WHERE email = $1`, email))
}

func (r *PostgresUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM site_users WHERE id = $1`, id))
}

func (r *PostgresUsers) Create(ctx context.Context, u *models.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO site_users (id, first_name, last_name, email, password_hash, created_at, last_login, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt, u.LastLogin, u.IsActive,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PostgresUsers) Update(ctx context.Context, u *models.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE site_users SET
			first_name = $2,
			last_name = $3,
			email = $4,
			password_hash = $5,
			last_login = $6,
			is_active = $7
		WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.LastLogin, u.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresSessions struct{ pool *pgxpool.Pool }

func (r *PostgresSessions) Create(ctx context.Context, s *models.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (handle, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.Handle, s.UserID, s.CreatedAt, s.ExpiresAt,
	)
	return err
}

func (r *PostgresSessions) Get(ctx context.Context, handle string) (*models.Session, error) {
	var s models.Session
	err := r.pool.QueryRow(ctx, `
		SELECT handle, user_id, created_at, expires_at FROM sessions WHERE handle = $1`,
		handle,
	).Scan(&s.Handle, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSessions) Delete(ctx context.Context, handle string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE handle = $1`, handle)
	return err
}

func (r *PostgresSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
