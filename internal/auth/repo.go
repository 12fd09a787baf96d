package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// SetPasswordClearInvite installs a new password hash and invalidates the
	// invite code in the same statement, so the code can never survive the
	// password change it authorised.
	SetPasswordClearInvite(ctx context.Context, id uuid.UUID, hash string) error
	// SetPasswordClearRecovery does the same for the recovery code.
	SetPasswordClearRecovery(ctx context.Context, id uuid.UUID, hash string) error
}

const userColumns = `id, name, surname, email, password_hash, role, limitations, objectives, status, phone, avatar, invite_code, recovery_code, created_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create persists a new user record.
func (r *PGRepository) Create(ctx context.Context, user *User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, surname, email, password_hash, role, limitations, objectives, status, phone, avatar, invite_code, recovery_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		user.ID, user.Name, user.Surname, user.Email, user.PasswordHash, user.Role,
		user.Profile.Limitations, user.Profile.Objectives, user.Profile.Status,
		nullable(user.Phone), nullable(user.Avatar), user.InviteCode, user.RecoveryCode, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail fetches a user by login key.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// SetPasswordClearInvite atomically installs the first real password of a
// provisioned account and marks the profile active.
func (r *PGRepository) SetPasswordClearInvite(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, invite_code = NULL, status = $3 WHERE id = $1`,
		id, hash, StatusActive)
	return err
}

// SetPasswordClearRecovery atomically resets the password and burns the
// recovery code.
func (r *PGRepository) SetPasswordClearRecovery(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, recovery_code = NULL WHERE id = $1`,
		id, hash)
	return err
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var phone, avatar *string
	err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Email, &user.PasswordHash, &user.Role,
		&user.Profile.Limitations, &user.Profile.Objectives, &user.Profile.Status,
		&phone, &avatar, &user.InviteCode, &user.RecoveryCode, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
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

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ Repository = (*PGRepository)(nil)
