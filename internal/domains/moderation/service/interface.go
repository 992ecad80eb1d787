package service

import (
	"context"

	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/moderation/model"
	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/shared/auth"
)

// ServiceInterface is the moderation lifecycle shared by every kind
type ServiceInterface interface {
	// Submit stores the binaries, then creates the record as PENDING
	Submit(ctx context.Context, actor auth.Actor, req model.SubmitRequest) (uuid.UUID, error)

	// Get hides non-approved records from everyone but their submitter and admins
	Get(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) (model.Record, error)

	ListPublic(ctx context.Context, kind model.Kind, filter model.PublicFilter) ([]model.Record, error)

	// ListBySubmitter returns every status to the submitter and admins,
	// approved records only to anyone else
	ListBySubmitter(ctx context.Context, actor auth.Actor, kind model.Kind, submitterID uuid.UUID) ([]model.Record, error)

	// Admin operations
	ListPending(ctx context.Context, actor auth.Actor, kind model.Kind) ([]model.Record, error)
	ListAll(ctx context.Context, actor auth.Actor, kind model.Kind, status *model.Status) ([]model.Record, error)
	Approve(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) error
	Reject(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) error
	Stats(ctx context.Context, actor auth.Actor) (*model.Stats, error)

	// ListApprovedVoicebanks serves the profile detail page
	ListApprovedVoicebanks(ctx context.Context, profileID uuid.UUID) ([]*model.Voicebank, error)
}

// ProfileLookup resolves existing voice profiles
type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*profileModel.VoiceProfile, error)
}
