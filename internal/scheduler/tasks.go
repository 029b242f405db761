package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskVisitReminder dispatches one visit reminder email.
const TaskVisitReminder = "fieldops.visit_reminder"

// VisitReminderPayload identifies the reminder to send.
type VisitReminderPayload struct {
	ReminderID string    `json:"reminderId"`
	OrderID    int64     `json:"orderId"`
	Label      string    `json:"label"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Reference  string    `json:"reference"`
	SendAt     time.Time `json:"sendAt"`
}

// NewVisitReminderTask builds the asynq task for a reminder.
func NewVisitReminderTask(payload VisitReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVisitReminder, data), nil
}

// ParseVisitReminderPayload decodes a reminder task payload.
func ParseVisitReminderPayload(task *asynq.Task) (VisitReminderPayload, error) {
	var payload VisitReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return VisitReminderPayload{}, err
	}
	return payload, nil
}
