package models

// ScheduleCreatedPayload is queued after a schedule is created so the user's
// device gets a push confirmation.
type ScheduleCreatedPayload struct {
	UserID       string `json:"userId"`
	ScheduleID   string `json:"scheduleId"`
	FCMToken     string `json:"fcmToken"`
	PackageTitle string `json:"packageTitle"`
	Amount       string `json:"amount"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"startDate"`
}
