package cron

import (
	"context"
	"fmt"

	"autosave/services/notification"
	"autosave/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewNotificationWorker builds the background server that delivers queued
// schedule notifications. Run it with Run(mux) and stop it with Shutdown.
func NewNotificationWorker(redisOpts asynq.RedisClientOpt, concurrency int, sender notification.PushSender, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.NotificationQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleCreated, HandleScheduleCreatedTask(sender, logger))
	return srv, mux
}

// HandleScheduleCreatedTask pushes the confirmation for one created schedule.
// Malformed payloads are not retried.
func HandleScheduleCreatedTask(sender notification.PushSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseScheduleCreatedTask(task)
		if err != nil {
			logger.Error("dropping schedule notification", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		if err := notification.DeliverScheduleCreated(ctx, sender, p); err != nil {
			logger.Warn("schedule notification failed",
				zap.String("userId", p.UserID),
				zap.String("scheduleId", p.ScheduleID),
				zap.Error(err))
			return err
		}
		logger.Debug("schedule notification sent", zap.String("scheduleId", p.ScheduleID))
		return nil
	}
}
