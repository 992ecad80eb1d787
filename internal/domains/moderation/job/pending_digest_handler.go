package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/domains/moderation/repository"
	"vocalhub-backend/internal/infrastructure/email"
)

// PendingDigestHandler runs on the scheduler and mails the review backlog
type PendingDigestHandler struct {
	repo       repository.Repository
	emailSvc   email.EmailService
	adminEmail string
}

func NewPendingDigestHandler(repo repository.Repository, emailSvc email.EmailService, adminEmail string) *PendingDigestHandler {
	return &PendingDigestHandler{
		repo:       repo,
		emailSvc:   emailSvc,
		adminEmail: adminEmail,
	}
}

func (h *PendingDigestHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	pending := make(map[string]int, len(model.Kinds()))
	total := 0
	for _, kind := range model.Kinds() {
		n, err := h.repo.CountByStatus(ctx, kind, model.StatusPending)
		if err != nil {
			return fmt.Errorf("count pending %s: %w", kind, err)
		}
		pending[kind.String()] = n
		total += n
	}

	log.Info().Int("total", total).Interface("pending", pending).Msg("Pending submissions digest")

	if total == 0 || h.adminEmail == "" {
		return nil
	}

	if err := h.emailSvc.SendPendingDigest(ctx, email.PendingDigestData{
		Email:   h.adminEmail,
		Pending: pending,
	}); err != nil {
		return fmt.Errorf("send pending digest: %w", err)
	}
	return nil
}
