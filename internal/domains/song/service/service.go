package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/domains/song/repository"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
	"vocalhub-backend/internal/shared/utils"
)

type songService struct {
	repo     repository.Repository
	profiles ProfileLookup
	store    storage.AssetStore
	images   *storage.ImageProcessor
}

func NewSongService(
	repo repository.Repository,
	profiles ProfileLookup,
	store storage.AssetStore,
	images *storage.ImageProcessor,
) ServiceInterface {
	return &songService{
		repo:     repo,
		profiles: profiles,
		store:    store,
		images:   images,
	}
}

// Create - Upload a song for an existing voice profile. Songs are published
// immediately; there is no review step.
func (s *songService) Create(ctx context.Context, actor auth.Actor, req *model.CreateSongRequest) (*model.Song, error) {
	// 1. Caller must be signed in
	if !actor.IsAuthenticated() {
		return nil, model.ErrLoginRequired
	}

	// 2. Validate form fields
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 3. Profile must exist before any bytes are written
	profile, err := s.profiles.GetByID(ctx, *req.ProfileID)
	if err != nil {
		return nil, err
	}

	// 4. Cover is optional but must decode as an image
	if req.CoverFile.Present() {
		if err := s.images.ValidateFile(req.CoverFile); err != nil {
			return nil, err
		}
	}

	// 5. Store binaries, remembering refs for rollback
	fileRef, err := s.store.Store(ctx, req.SongFile, storage.CategorySongs)
	if err != nil {
		return nil, err
	}
	written := []storage.Ref{fileRef}

	var coverRef *string
	if req.CoverFile.Present() {
		ref, err := s.store.Store(ctx, req.CoverFile, storage.CategoryCovers)
		if err != nil {
			s.discard(ctx, written)
			return nil, err
		}
		written = append(written, ref)
		coverRef = utils.OptionalString(ref.String())
	}

	// 6. Build entity
	song := &model.Song{
		ID:          uuid.New(),
		Title:       req.Title,
		ProfileID:   profile.ID,
		SubmitterID: actor.AccountID,
		FileRef:     fileRef.String(),
		CoverRef:    coverRef,
		Creator:     utils.OptionalString(req.Creator),
		BilibiliURL: utils.OptionalString(req.BilibiliURL),
		Lyrics:      utils.OptionalString(req.Lyrics),
		ProfileName: profile.Name,
		CreatedAt:   time.Now().UTC(),
	}

	// 7. Save; on failure the stored files are orphans
	if err := s.repo.Create(ctx, song); err != nil {
		s.discard(ctx, written)
		return nil, fmt.Errorf("failed to create song: %w", err)
	}

	log.Info().
		Str("song_id", song.ID.String()).
		Str("profile_id", profile.ID.String()).
		Str("submitter_id", actor.AccountID.String()).
		Msg("song uploaded")

	return song, nil
}

// discard removes orphaned uploads. It runs on a detached context so a
// cancelled request still cleans up.
func (s *songService) discard(ctx context.Context, refs []storage.Ref) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.store.Discard(cleanupCtx, ref); err != nil {
			log.Warn().Err(err).Str("ref", ref.String()).Msg("failed to discard orphaned asset")
		}
	}
}

func (s *songService) Get(ctx context.Context, id uuid.UUID) (*model.Song, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *songService) List(ctx context.Context, profileID *uuid.UUID) ([]*model.Song, error) {
	return s.repo.List(ctx, profileID)
}

func (s *songService) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*model.Song, error) {
	return s.repo.ListBySubmitter(ctx, submitterID)
}
