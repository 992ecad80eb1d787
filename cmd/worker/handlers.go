package main

import (
	"github.com/hibiken/asynq"

	moderationJob "vocalhub-backend/internal/domains/moderation/job"
	profileJob "vocalhub-backend/internal/domains/profile/job"
	"vocalhub-backend/internal/infrastructure/email"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Moderation
	notifyDecision *moderationJob.NotifyDecisionHandler
	pendingDigest  *moderationJob.PendingDigestHandler

	// Profile media
	processAvatar *profileJob.ProcessAvatarHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(c.Config.Email)

	return &HandlerRegistry{
		notifyDecision: moderationJob.NewNotifyDecisionHandler(c.ModerationRepo, c.AccountRepo, emailSvc),
		pendingDigest:  moderationJob.NewPendingDigestHandler(c.ModerationRepo, emailSvc, c.Config.Email.AdminEmail),
		processAvatar:  profileJob.NewProcessAvatarHandler(c.ProfileService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeNotifyDecision, h.notifyDecision.ProcessTask)
	mux.HandleFunc(shared.TypePendingDigest, h.pendingDigest.ProcessTask)
	mux.HandleFunc(shared.TypeProcessAvatar, h.processAvatar.ProcessTask)
}
