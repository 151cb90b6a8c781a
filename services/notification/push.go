package notification

import (
	"context"
	"fmt"

	"autosave/models"

	"firebase.google.com/go/v4/messaging"
)

// ScheduleCreatedMessage builds the push shown after a schedule is created.
func ScheduleCreatedMessage(p models.ScheduleCreatedPayload) *messaging.Message {
	title := "Automatic savings scheduled"
	body := fmt.Sprintf("%s %s into %s starting %s.", p.Amount, p.Frequency, p.PackageTitle, p.StartDate)
	if p.PackageTitle == "" {
		body = fmt.Sprintf("%s %s starting %s.", p.Amount, p.Frequency, p.StartDate)
	}

	return &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":       "schedule_created",
			"scheduleId": p.ScheduleID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
}

// DeliverScheduleCreated sends the push directly. The worker calls this.
func DeliverScheduleCreated(ctx context.Context, sender PushSender, p models.ScheduleCreatedPayload) error {
	if p.FCMToken == "" {
		return nil
	}
	if _, err := sender.Send(ctx, ScheduleCreatedMessage(p)); err != nil {
		return fmt.Errorf("DeliverScheduleCreated: failed to send FCM message: %w", err)
	}
	return nil
}
