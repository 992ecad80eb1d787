package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/infrastructure/queue"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/pkg/container"
)

// asynqServer wraps asynq.Server with logging on shutdown
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the Asynq server and starts consuming
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		queue.RedisOpt(c.Config.Redis),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueDefault:  3,
				shared.QueueLow:      1,
			},
			Concurrency:     c.Config.Worker.Concurrency,
			ShutdownTimeout: c.Config.Worker.ShutdownWait,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("[Asynq] task failed")
			}),
		},
	)

	go func() {
		log.Info().Int("concurrency", c.Config.Worker.Concurrency).Msg("[Worker] starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] failed")
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	start := time.Now()
	log.Info().Msg("[Worker] shutting down...")
	s.Server.Shutdown()
	log.Info().Dur("took", time.Since(start)).Msg("[Worker] stopped")
}
