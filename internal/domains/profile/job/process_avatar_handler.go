package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/profile/service"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/internal/shared/apperror"
)

// ProcessAvatarHandler builds the thumbnail for a newly created profile
type ProcessAvatarHandler struct {
	profileService service.ServiceInterface
}

func NewProcessAvatarHandler(profileService service.ServiceInterface) *ProcessAvatarHandler {
	return &ProcessAvatarHandler{profileService: profileService}
}

func (h *ProcessAvatarHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessAvatarPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessAvatar payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	profileID, err := uuid.Parse(payload.ProfileID)
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", payload.ProfileID, asynq.SkipRetry)
	}

	if err := h.profileService.ProcessAvatar(ctx, profileID, payload.AvatarRef); err != nil {
		log.Error().
			Err(err).
			Str("profile_id", payload.ProfileID).
			Msg("Failed to process avatar")

		// a broken or missing image will not get better on retry
		if apperror.IsValidation(err) || apperror.IsNotFound(err) {
			return fmt.Errorf("process avatar: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("process avatar: %w", err)
	}

	log.Info().Str("profile_id", payload.ProfileID).Msg("Avatar processed successfully")
	return nil
}
