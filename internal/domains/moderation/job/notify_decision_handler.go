package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/domains/moderation/repository"
	"vocalhub-backend/internal/infrastructure/email"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/internal/shared/apperror"
)

// AccountLookup resolves the submitter to notify
type AccountLookup interface {
	GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.AccountBasicInfo, error)
}

// NotifyDecisionHandler mails the submitter after Approve/Reject
type NotifyDecisionHandler struct {
	repo     repository.Repository
	accounts AccountLookup
	emailSvc email.EmailService
}

func NewNotifyDecisionHandler(repo repository.Repository, accounts AccountLookup, emailSvc email.EmailService) *NotifyDecisionHandler {
	return &NotifyDecisionHandler{
		repo:     repo,
		accounts: accounts,
		emailSvc: emailSvc,
	}
}

func (h *NotifyDecisionHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.NotifyDecisionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal NotifyDecision payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	kind, err := model.ParseKind(payload.Kind)
	if err != nil {
		return fmt.Errorf("notify decision: %w: %w", err, asynq.SkipRetry)
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return fmt.Errorf("notify decision: invalid id %q: %w", payload.ID, asynq.SkipRetry)
	}

	rec, err := h.repo.Get(ctx, kind, id)
	if apperror.IsNotFound(err) {
		log.Warn().Str("kind", payload.Kind).Str("id", payload.ID).Msg("Decided record no longer exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}

	// a later decision already superseded this one
	if string(rec.ModerationState().Status) != payload.Status {
		log.Info().
			Str("id", payload.ID).
			Str("queued_status", payload.Status).
			Str("current_status", string(rec.ModerationState().Status)).
			Msg("Skipping stale decision notice")
		return nil
	}

	account, err := h.accounts.GetBasicInfo(ctx, rec.ModerationState().SubmitterID)
	if err != nil {
		return fmt.Errorf("load submitter: %w", err)
	}

	err = h.emailSvc.SendDecisionNotice(ctx, email.DecisionNoticeData{
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Kind:        kind.String(),
		Title:       rec.DisplayName(),
		Status:      payload.Status,
	})
	if err != nil {
		log.Error().Err(err).Str("id", payload.ID).Msg("Failed to send decision notice")
		return fmt.Errorf("send decision notice: %w", err)
	}

	log.Info().
		Str("kind", payload.Kind).
		Str("id", payload.ID).
		Str("status", payload.Status).
		Msg("Decision notice sent")

	return nil
}
