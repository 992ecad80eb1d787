package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/profile/service"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/internal/shared/apperror"
)

type stubProfileService struct {
	service.ServiceInterface
	err       error
	profileID uuid.UUID
	avatarRef string
}

func (s *stubProfileService) ProcessAvatar(_ context.Context, profileID uuid.UUID, avatarRef string) error {
	s.profileID = profileID
	s.avatarRef = avatarRef
	return s.err
}

func avatarTask(t *testing.T, payload shared.ProcessAvatarPayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeProcessAvatar, raw)
}

func TestProcessAvatarHandler_Success(t *testing.T) {
	svc := &stubProfileService{}
	id := uuid.New()

	err := NewProcessAvatarHandler(svc).ProcessTask(context.Background(), avatarTask(t, shared.ProcessAvatarPayload{
		ProfileID: id.String(),
		AvatarRef: "avatars/a.png",
	}))

	require.NoError(t, err)
	assert.Equal(t, id, svc.profileID)
	assert.Equal(t, "avatars/a.png", svc.avatarRef)
}

func TestProcessAvatarHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewProcessAvatarHandler(&stubProfileService{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeProcessAvatar, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), avatarTask(t, shared.ProcessAvatarPayload{ProfileID: "nope"}))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestProcessAvatarHandler_RetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		skipRetry bool
	}{
		{"missing profile", model.ErrProfileNotFound, true},
		{"undecodable image", apperror.Validation("INVALID_IMAGE", "not an image"), true},
		{"storage outage", apperror.Storage("bucket unavailable", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProcessAvatarHandler(&stubProfileService{err: tt.err})

			err := h.ProcessTask(context.Background(), avatarTask(t, shared.ProcessAvatarPayload{
				ProfileID: uuid.NewString(),
				AvatarRef: "avatars/a.png",
			}))

			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}
