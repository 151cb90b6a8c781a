package notification

import (
	"context"
	"errors"
	"testing"

	"autosave/models"
	"autosave/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

var payload = models.ScheduleCreatedPayload{
	UserID:       "u1",
	ScheduleID:   "s1",
	FCMToken:     "device-token",
	PackageTitle: "Rent",
	Amount:       "₦6,000",
	Frequency:    "weekly",
	StartDate:    "2026-10-15",
}

func TestQueueNotifierEnqueues(t *testing.T) {
	q := &fakeQueue{}
	require.NoError(t, (&QueueNotifier{Queue: q}).NotifyScheduleCreated(context.Background(), payload))

	require.Len(t, q.tasks, 1)
	got, err := tasks.ParseScheduleCreatedTask(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestQueueNotifierSkipsWithoutToken(t *testing.T) {
	q := &fakeQueue{}
	p := payload
	p.FCMToken = ""
	require.NoError(t, (&QueueNotifier{Queue: q}).NotifyScheduleCreated(context.Background(), p))
	assert.Empty(t, q.tasks)
}

func TestQueueNotifierWrapsEnqueueError(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	err := (&QueueNotifier{Queue: q}).NotifyScheduleCreated(context.Background(), payload)
	assert.ErrorContains(t, err, "redis down")
}

func TestDeliverScheduleCreated(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, DeliverScheduleCreated(context.Background(), s, payload))

	require.Len(t, s.sent, 1)
	msg := s.sent[0]
	assert.Equal(t, "device-token", msg.Token)
	assert.Equal(t, "₦6,000 weekly into Rent starting 2026-10-15.", msg.Notification.Body)
	assert.Equal(t, "s1", msg.Data["scheduleId"])
}

func TestDeliverPropagatesSendError(t *testing.T) {
	s := &fakeSender{err: errors.New("unregistered")}
	assert.Error(t, DeliverScheduleCreated(context.Background(), s, payload))
}
