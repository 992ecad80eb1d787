package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	moderationModel "vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/profile/repository"
	songModel "vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/infrastructure/storage"
)

// ProfileDetail is a profile with its approved voicebanks and songs
type ProfileDetail struct {
	*model.VoiceProfile
	Voicebanks []*moderationModel.Voicebank `json:"voicebanks"`
	Songs      []*songModel.Song            `json:"songs"`
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.VoiceProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*ProfileDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.VoiceProfile, error)

	// ProcessAvatar writes a thumbnail of the profile's avatar
	ProcessAvatar(ctx context.Context, profileID uuid.UUID, avatarRef string) error
}

type VoicebankLister interface {
	ListApprovedVoicebanks(ctx context.Context, profileID uuid.UUID) ([]*moderationModel.Voicebank, error)
}

type SongLister interface {
	List(ctx context.Context, profileID *uuid.UUID) ([]*songModel.Song, error)
}

type profileService struct {
	repo       repository.Repository
	voicebanks VoicebankLister
	songs      SongLister
	store      storage.AssetStore
	images     *storage.ImageProcessor
}

func NewProfileService(
	repo repository.Repository,
	voicebanks VoicebankLister,
	songs SongLister,
	store storage.AssetStore,
	images *storage.ImageProcessor,
) ServiceInterface {
	return &profileService{
		repo:       repo,
		voicebanks: voicebanks,
		songs:      songs,
		store:      store,
		images:     images,
	}
}

func (s *profileService) List(ctx context.Context, filter model.ListFilter) ([]*model.VoiceProfile, error) {
	return s.repo.List(ctx, filter)
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*model.VoiceProfile, error) {
	return s.repo.GetByID(ctx, id)
}

// Get - Profile detail with its approved voicebanks and all songs
func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*ProfileDetail, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Pending and rejected voicebanks never appear on a profile page
	voicebanks, err := s.voicebanks.ListApprovedVoicebanks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list voicebanks: %w", err)
	}

	songs, err := s.songs.List(ctx, &id)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	return &ProfileDetail{
		VoiceProfile: profile,
		Voicebanks:   voicebanks,
		Songs:        songs,
	}, nil
}

// ProcessAvatar - Called by the worker after a new profile is created
func (s *profileService) ProcessAvatar(ctx context.Context, profileID uuid.UUID, avatarRef string) error {
	// 1. Resolve the stored avatar
	ref, err := storage.ParseRef(avatarRef)
	if err != nil {
		return err
	}

	rc, _, err := s.store.Retrieve(ctx, ref)
	if err != nil {
		return err
	}
	defer rc.Close()

	// 2. Resize in memory
	thumb, err := s.images.Thumbnail(rc, storage.ThumbnailSize)
	if err != nil {
		return err
	}

	// 3. Store thumbnail
	thumbRef, err := s.store.Store(ctx, storage.BytesFile("thumb.jpg", thumb), storage.CategoryAvatarThumbs)
	if err != nil {
		return err
	}

	// 4. Point the profile at it; drop the file if the update fails
	if err := s.repo.SetAvatarThumb(ctx, profileID, thumbRef.String()); err != nil {
		if discardErr := s.store.Discard(context.WithoutCancel(ctx), thumbRef); discardErr != nil {
			log.Warn().Err(discardErr).Str("ref", thumbRef.String()).Msg("failed to discard thumbnail")
		}
		return err
	}

	log.Info().
		Str("profile_id", profileID.String()).
		Str("thumb_ref", thumbRef.String()).
		Int("bytes", len(thumb)).
		Msg("avatar thumbnail created")
	return nil
}
