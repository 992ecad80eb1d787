package repository

import (
	"context"

	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/account/model"
	"vocalhub-backend/internal/shared"
)

type Repository interface {
	// Create returns ErrEmailAlreadyExists on a duplicate email
	Create(ctx context.Context, a *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)

	// GetBasicInfo serves background jobs
	GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.AccountBasicInfo, error)
}
