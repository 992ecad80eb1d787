package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vocalhub-backend/internal/domains/account/model"
	"vocalhub-backend/internal/shared"
)

const uniqueViolation = "23505"

type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) Repository {
	return &postgresAccountRepository{pool: pool}
}

const accountColumns = `id, email, display_name, password_hash, role, created_at, updated_at`

// Create - Insert a new account. Duplicate emails are detected by the unique index.
func (r *postgresAccountRepository) Create(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Email, a.DisplayName, a.PasswordHash, a.Role, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		// Map unique violation to a domain error
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *postgresAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *postgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetBasicInfo - Minimal view for background jobs (email + display name)
func (r *postgresAccountRepository) GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.AccountBasicInfo, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := &shared.AccountBasicInfo{ID: a.ID.String(), Email: a.Email}
	if a.DisplayName != nil {
		info.DisplayName = *a.DisplayName
	}
	return info, nil
}

func (r *postgresAccountRepository) findOne(ctx context.Context, query string, arg any) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Email,
		&a.DisplayName,
		&a.PasswordHash,
		&a.Role,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}
