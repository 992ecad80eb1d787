package repository

import (
	"context"

	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/song/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Song) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Song, error)

	// List orders by created_at DESC; nil profileID lists every song
	List(ctx context.Context, profileID *uuid.UUID) ([]*model.Song, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*model.Song, error)
}
