package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// RepositoryPort defines data access methods for user management.
type RepositoryPort interface {
	ListClients(ctx context.Context) ([]auth.User, error)
	Get(ctx context.Context, id uuid.UUID) (*auth.User, error)
	CreateProvisioned(ctx context.Context, user *auth.User) error
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*auth.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetRecoveryCode(ctx context.Context, id uuid.UUID, code string) error
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, name, surname, email, password_hash, role, limitations, objectives, status, phone, avatar, invite_code, recovery_code, created_at`

// ListClients returns every client account, newest first.
func (r *Repository) ListClients(ctx context.Context) ([]auth.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, auth.RoleClient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []auth.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

// Get fetches a single user by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateProvisioned persists an admin-created account holding its invite code.
func (r *Repository) CreateProvisioned(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, surname, email, password_hash, role, limitations, objectives, status, phone, avatar, invite_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		user.ID, user.Name, user.Surname, user.Email, user.PasswordHash, user.Role,
		user.Profile.Limitations, user.Profile.Objectives, user.Profile.Status,
		emptyToNil(user.Phone), emptyToNil(user.Avatar), user.InviteCode, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
	}
	return err
}

// Update applies the provided fields and returns the fresh record.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*auth.User, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET
			name        = COALESCE($2, name),
			surname     = COALESCE($3, surname),
			email       = COALESCE($4, email),
			phone       = COALESCE($5, phone),
			limitations = COALESCE($6, limitations),
			objectives  = COALESCE($7, objectives),
			status      = COALESCE($8, status)
		WHERE id = $1`,
		id, in.Name, in.Surname, in.Email, in.Phone, in.Limitations, in.Objectives, in.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, httpx.ErrDuplicate
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the account. Dependent records (workouts, feedback, notes)
// are intentionally left in place, matching the coaching workflow where
// history outlives the account.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetRecoveryCode stores a fresh one-time recovery code.
func (r *Repository) SetRecoveryCode(ctx context.Context, id uuid.UUID, code string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET recovery_code = $2 WHERE id = $1`, id, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetAvatar records the uploaded avatar URL.
func (r *Repository) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET avatar = $2 WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var user auth.User
	var phone, avatar *string
	err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Email, &user.PasswordHash, &user.Role,
		&user.Profile.Limitations, &user.Profile.Objectives, &user.Profile.Status,
		&phone, &avatar, &user.InviteCode, &user.RecoveryCode, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		user.Phone = *phone
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	return &user, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ RepositoryPort = (*Repository)(nil)
