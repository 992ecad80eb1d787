package service

import (
	"context"

	"github.com/google/uuid"

	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/shared/auth"
)

type ServiceInterface interface {
	// Create stores the song (and optional cover) before inserting the record
	Create(ctx context.Context, actor auth.Actor, req *model.CreateSongRequest) (*model.Song, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Song, error)
	List(ctx context.Context, profileID *uuid.UUID) ([]*model.Song, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*model.Song, error)
}

type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*profileModel.VoiceProfile, error)
}
