package repository

import (
	"context"

	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/profile/model"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.VoiceProfile, error)

	// List orders by name ASC
	List(ctx context.Context, filter model.ListFilter) ([]*model.VoiceProfile, error)

	SetAvatarThumb(ctx context.Context, id uuid.UUID, ref string) error
}
