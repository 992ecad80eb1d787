package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/config"
	"vocalhub-backend/internal/shared"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redisCfg config.RedisConfig, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisOpt(redisCfg),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	return s.registerPendingDigestJob()
}

// ================================================
// Pending submission digest (daily)
// ================================================
func (s *Scheduler) registerPendingDigestJob() error {
	task, err := NewTask(shared.TypePendingDigest, shared.PendingDigestPayload{})
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(
		s.cfg.DigestCronSpec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register pending digest job: %w", err)
	}

	log.Info().Str("entry_id", entryID).Str("cron", s.cfg.DigestCronSpec).Msg("[SCHEDULER] pending digest registered")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
