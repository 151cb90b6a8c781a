package notification

import (
	"context"
	"fmt"

	"autosave/models"
	"autosave/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
)

// Notifier tells the user a schedule was created.
type Notifier interface {
	NotifyScheduleCreated(ctx context.Context, payload models.ScheduleCreatedPayload) error
}

// PushSender delivers one push message.
type PushSender interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

// Enqueuer is the part of *asynq.Client the queue notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier defers delivery to the background worker.
type QueueNotifier struct {
	Queue Enqueuer
}

func (n *QueueNotifier) NotifyScheduleCreated(ctx context.Context, payload models.ScheduleCreatedPayload) error {
	if payload.FCMToken == "" {
		return nil
	}
	task, opts, err := tasks.NewScheduleCreatedTask(payload)
	if err != nil {
		return fmt.Errorf("NotifyScheduleCreated: build task: %w", err)
	}
	if _, err := n.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("NotifyScheduleCreated: enqueue: %w", err)
	}
	return nil
}

// Nop drops notifications; used when push delivery is disabled.
type Nop struct{}

func (Nop) NotifyScheduleCreated(context.Context, models.ScheduleCreatedPayload) error { return nil }
