package tasks

import (
	"encoding/json"
	"fmt"

	"autosave/models"

	"github.com/hibiken/asynq"
)

const TypeScheduleCreated = "schedule:created"

// NotificationQueue carries user-facing push work.
const NotificationQueue = "notifications"

func NewScheduleCreatedTask(payload models.ScheduleCreatedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleCreated, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationQueue),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func ParseScheduleCreatedTask(task *asynq.Task) (models.ScheduleCreatedPayload, error) {
	var p models.ScheduleCreatedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeScheduleCreated, err)
	}
	return p, nil
}
