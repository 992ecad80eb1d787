package main

import (
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/infrastructure/queue"
	"vocalhub-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler with logging on shutdown
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic jobs and starts the scheduler
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(c.Config.Redis, c.Config.Worker)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] failed to register jobs")
	}

	go func() {
		log.Info().Msg("[Scheduler] starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] stopped")
}
