package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/domains/moderation/repository"
	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/infrastructure/queue"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
	"vocalhub-backend/internal/shared/utils"
	"vocalhub-backend/pkg/cache"
)

var ErrAdminRequired = apperror.Forbidden("ADMIN_REQUIRED", "admin role required")

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type moderationService struct {
	repo     repository.Repository
	profiles ProfileLookup
	store    storage.AssetStore
	cache    cache.Cache    // optional
	queue    queue.Enqueuer // optional
	cacheTTL time.Duration
	now      func() time.Time
}

func NewModerationService(
	repo repository.Repository,
	profiles ProfileLookup,
	store storage.AssetStore,
	cache cache.Cache,
	queue queue.Enqueuer,
	cacheTTL time.Duration,
) ServiceInterface {
	return &moderationService{
		repo:     repo,
		profiles: profiles,
		store:    store,
		cache:    cache,
		queue:    queue,
		cacheTTL: cacheTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// SUBMIT
// =====================================================

func (s *moderationService) Submit(ctx context.Context, actor auth.Actor, req model.SubmitRequest) (uuid.UUID, error) {
	// Step 1: Identity comes from the request boundary
	if !actor.IsAuthenticated() {
		return uuid.Nil, model.ErrLoginRequired
	}

	// Step 2: Required fields and attachments
	if err := req.Validate(); err != nil {
		return uuid.Nil, apperror.FromValidation(err)
	}

	// Step 3: Kind specific persistence
	switch r := req.(type) {
	case *model.VoicebankSubmission:
		return s.submitVoicebank(ctx, actor, r)
	case *model.TutorialSubmission:
		return s.submitTutorial(ctx, actor, r)
	default:
		return uuid.Nil, model.ErrUnknownKind
	}
}

func (s *moderationService) submitVoicebank(ctx context.Context, actor auth.Actor, r *model.VoicebankSubmission) (uuid.UUID, error) {
	// Resolve an existing profile before any bytes are written
	var profileID uuid.UUID
	if !r.NewProfile {
		profile, err := s.profiles.GetByID(ctx, *r.ProfileID)
		if err != nil {
			return uuid.Nil, err
		}
		profileID = profile.ID
	}

	// Every ref written below is discarded if a later step fails
	batch := newUploadBatch(s.store)

	fileRef, err := batch.put(ctx, r.VoicebankFile, storage.CategoryVoicebanks)
	if err != nil {
		return uuid.Nil, batch.abort(ctx, err)
	}
	sampleRef, err := batch.put(ctx, r.SampleFile, storage.CategorySamples)
	if err != nil {
		return uuid.Nil, batch.abort(ctx, err)
	}

	now := s.now()

	// New profile: avatar is required, image optional
	var newProfile *profileModel.VoiceProfile
	if r.NewProfile {
		avatarRef, err := batch.put(ctx, r.AvatarFile, storage.CategoryAvatars)
		if err != nil {
			return uuid.Nil, batch.abort(ctx, err)
		}

		var imageRef *string
		if r.ImageFile.Present() {
			ref, err := batch.put(ctx, r.ImageFile, storage.CategoryImages)
			if err != nil {
				return uuid.Nil, batch.abort(ctx, err)
			}
			imageRef = utils.OptionalString(ref.String())
		}

		newProfile = &profileModel.VoiceProfile{
			ID:          uuid.New(),
			Name:        r.Name,
			Gender:      r.Gender,
			Engines:     r.Engines,
			Languages:   r.Languages,
			AvatarRef:   avatarRef.String(),
			ImageRef:    imageRef,
			Description: utils.OptionalString(r.Description),
			CreatedAt:   now,
		}
		profileID = newProfile.ID
	}

	vb := &model.Voicebank{
		ID:            uuid.New(),
		ProfileID:     profileID,
		FileRef:       fileRef.String(),
		SampleRef:     sampleRef.String(),
		VoiceProvider: utils.OptionalString(r.VoiceProvider),
		Moderation: model.Moderation{
			SubmitterID: actor.AccountID,
			Status:      model.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	// Profile and voicebank commit in one transaction
	if err := s.repo.CreateVoicebank(ctx, vb, newProfile); err != nil {
		return uuid.Nil, batch.abort(ctx, fmt.Errorf("failed to create voicebank: %w", err))
	}

	if newProfile != nil {
		s.enqueue(shared.TypeProcessAvatar, shared.ProcessAvatarPayload{
			ProfileID: newProfile.ID.String(),
			AvatarRef: newProfile.AvatarRef,
		}, shared.QueueLow)
	}

	log.Info().
		Str("voicebank_id", vb.ID.String()).
		Str("profile_id", profileID.String()).
		Bool("new_profile", newProfile != nil).
		Str("submitter_id", actor.AccountID.String()).
		Msg("voicebank submitted")

	return vb.ID, nil
}

func (s *moderationService) submitTutorial(ctx context.Context, actor auth.Actor, r *model.TutorialSubmission) (uuid.UUID, error) {
	batch := newUploadBatch(s.store)

	fileRef, err := batch.put(ctx, r.TutorialFile, storage.CategoryTutorials)
	if err != nil {
		return uuid.Nil, batch.abort(ctx, err)
	}

	// engines is a NOT NULL array column; nil would bind as NULL
	engines := r.Engines
	if engines == nil {
		engines = []string{}
	}

	now := s.now()
	t := &model.Tutorial{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Difficulty:  r.Difficulty,
		FileRef:     fileRef.String(),
		Engines:     engines,
		Moderation: model.Moderation{
			SubmitterID: actor.AccountID,
			Status:      model.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	if err := s.repo.CreateTutorial(ctx, t); err != nil {
		return uuid.Nil, batch.abort(ctx, fmt.Errorf("failed to create tutorial: %w", err))
	}

	log.Info().
		Str("tutorial_id", t.ID.String()).
		Str("submitter_id", actor.AccountID.String()).
		Msg("tutorial submitted")

	return t.ID, nil
}

// =====================================================
// READ
// =====================================================

func (s *moderationService) Get(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) (model.Record, error) {
	if !kind.Valid() {
		return nil, model.ErrUnknownKind
	}

	rec, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if !rec.ModerationState().VisibleTo(actor) {
		return nil, model.ErrSubmissionNotFound
	}
	return rec, nil
}

// ListPublic - Approved records only, cache-aside with a per-kind generation
func (s *moderationService) ListPublic(ctx context.Context, kind model.Kind, filter model.PublicFilter) ([]model.Record, error) {
	if !kind.Valid() {
		return nil, model.ErrUnknownKind
	}

	// 1. Try cache first
	key, cacheable := s.publicCacheKey(ctx, kind, filter)
	if cacheable {
		var cached model.RecordList
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("public listing cache read failed")
		} else if found && cached.Kind == kind {
			return cached.Records(), nil
		}
	}

	// 2. Cache MISS - query database
	records, err := s.repo.List(ctx, kind, filter.ListFilter())
	if err != nil {
		return nil, err
	}

	// 3. Cache the result
	if cacheable {
		if err := s.cache.Set(ctx, key, model.NewRecordList(kind, records), s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("public listing cache write failed")
		}
	}

	return records, nil
}

func (s *moderationService) ListBySubmitter(ctx context.Context, actor auth.Actor, kind model.Kind, submitterID uuid.UUID) ([]model.Record, error) {
	if !kind.Valid() {
		return nil, model.ErrUnknownKind
	}

	filter := model.ListFilter{SubmitterID: &submitterID}
	if !actor.Owns(submitterID) && !actor.IsAdmin() {
		approved := model.StatusApproved
		filter.Status = &approved
	}

	return s.repo.List(ctx, kind, filter)
}

func (s *moderationService) ListApprovedVoicebanks(ctx context.Context, profileID uuid.UUID) ([]*model.Voicebank, error) {
	records, err := s.ListPublic(ctx, model.KindVoicebank, model.PublicFilter{ProfileID: &profileID})
	if err != nil {
		return nil, err
	}

	out := make([]*model.Voicebank, 0, len(records))
	for _, r := range records {
		if vb, ok := r.(*model.Voicebank); ok {
			out = append(out, vb)
		}
	}
	return out, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *moderationService) ListPending(ctx context.Context, actor auth.Actor, kind model.Kind) ([]model.Record, error) {
	pending := model.StatusPending
	return s.ListAll(ctx, actor, kind, &pending)
}

func (s *moderationService) ListAll(ctx context.Context, actor auth.Actor, kind model.Kind, status *model.Status) ([]model.Record, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if !kind.Valid() {
		return nil, model.ErrUnknownKind
	}
	return s.repo.List(ctx, kind, model.ListFilter{Status: status})
}

func (s *moderationService) Approve(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) error {
	return s.decide(ctx, actor, kind, id, model.StatusApproved)
}

func (s *moderationService) Reject(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID) error {
	return s.decide(ctx, actor, kind, id, model.StatusRejected)
}

// decide overwrites the status; re-decisions are allowed and the last write wins
func (s *moderationService) decide(ctx context.Context, actor auth.Actor, kind model.Kind, id uuid.UUID, status model.Status) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	if !kind.Valid() {
		return model.ErrUnknownKind
	}

	// 1. Overwrite status; missing id is NotFound
	if err := s.repo.SetStatus(ctx, kind, id, status); err != nil {
		return err
	}

	// 2. Bump generation so cached public listings go stale
	s.invalidatePublic(ctx, kind)

	// 3. Notify the submitter async
	s.enqueue(shared.TypeNotifyDecision, shared.NotifyDecisionPayload{
		Kind:   kind.String(),
		ID:     id.String(),
		Status: string(status),
	}, shared.QueueDefault)

	log.Info().
		Str("kind", kind.String()).
		Str("id", id.String()).
		Str("status", string(status)).
		Str("admin_id", actor.AccountID.String()).
		Msg("moderation decision recorded")

	return nil
}

func (s *moderationService) Stats(ctx context.Context, actor auth.Actor) (*model.Stats, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	stats := &model.Stats{Pending: make(map[model.Kind]int, len(model.Kinds()))}
	for _, kind := range model.Kinds() {
		n, err := s.repo.CountByStatus(ctx, kind, model.StatusPending)
		if err != nil {
			return nil, err
		}
		stats.Pending[kind] = n
	}
	return stats, nil
}

// =====================================================
// HELPERS
// =====================================================

// publicCacheKey reads the kind's generation. Any cache failure disables
// caching for this call.
func (s *moderationService) publicCacheKey(ctx context.Context, kind model.Kind, filter model.PublicFilter) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	var gen int64
	if _, err := s.cache.Get(ctx, model.PublicGenerationKey(kind), &gen); err != nil {
		log.Warn().Err(err).Str("kind", kind.String()).Msg("public listing generation unavailable")
		return "", false
	}
	return fmt.Sprintf("%s:g=%d", filter.CacheKey(kind), gen), true
}

func (s *moderationService) invalidatePublic(ctx context.Context, kind model.Kind) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Increment(ctx, model.PublicGenerationKey(kind)); err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to invalidate public listing cache")
	}
}

// enqueue is fire-and-forget; failures are logged, never returned
func (s *moderationService) enqueue(taskType string, payload interface{}, queueName string) {
	if s.queue == nil {
		return
	}
	if err := queue.EnqueueJSON(s.queue, taskType, payload, queue.DefaultTaskOptions(queueName)...); err != nil {
		log.Error().Err(err).Str("task", taskType).Msg("failed to enqueue task")
	}
}
