package repository

import (
	"context"
	"errors"
	"time"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role,
	last_login, is_active, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.FirstName(), u.LastName(),
		u.Role().String(), u.IsActive(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "failed to find user by ID")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	return scanUser(row, "failed to find user by email")
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, u.ID())
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanUser(row pgx.Row, failMsg string) (*user.User, error) {
	var (
		id                   uuid.UUID
		email, passwordHash  string
		firstName, lastName  string
		role                 string
		lastLogin            *time.Time
		isActive             bool
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&id, &email, &passwordHash, &firstName, &lastName, &role,
		&lastLogin, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(failMsg, err)
	}

	return user.ReconstructUser(
		id, user.ReconstructEmail(email), passwordHash, firstName, lastName,
		user.Role(role), lastLogin, isActive, createdAt, updatedAt,
	), nil
}
