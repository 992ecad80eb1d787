package repository

import (
	"context"

	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/moderation/model"
	profileModel "vocalhub-backend/internal/domains/profile/model"
)

// Repository persists moderatable records of every kind
type Repository interface {
	// CreateVoicebank inserts the voicebank and, when newProfile is non-nil,
	// the profile it introduces. Both commit or neither does.
	CreateVoicebank(ctx context.Context, vb *model.Voicebank, newProfile *profileModel.VoiceProfile) error

	CreateTutorial(ctx context.Context, t *model.Tutorial) error

	Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Record, error)

	// List orders by created_at DESC
	List(ctx context.Context, kind model.Kind, filter model.ListFilter) ([]model.Record, error)

	// SetStatus overwrites the status unconditionally (last writer wins)
	SetStatus(ctx context.Context, kind model.Kind, id uuid.UUID, status model.Status) error

	CountByStatus(ctx context.Context, kind model.Kind, status model.Status) (int, error)
}
