package workspace

import (
	"fmt"
	"strings"
	"time"
)

// Reminder is one planned customer touchpoint around a scheduled visit.
type Reminder struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	SendAt      *time.Time `json:"sendAt"`
	SendAtLabel string     `json:"sendAtLabel"`
	Status      string     `json:"status"`
}

var reminderPlan = []struct {
	key    string
	label  string
	offset time.Duration
}{
	{key: "pre_visit", label: "Pre-visit checklist", offset: -60 * time.Minute},
	{key: "arrival", label: "Technician arrival confirmation", offset: 0},
	{key: "follow_up", label: "Post-visit satisfaction survey", offset: 120 * time.Minute},
}

// buildReminders derives the reminder schedule for an order. A reminders
// list stored in metadata wins; otherwise three touchpoints are planned
// around the scheduled visit. Orders with neither get none.
func buildReminders(now time.Time, order Order) []Reminder {
	if stored, ok := order.Metadata["reminders"].([]any); ok {
		return storedReminders(now, order.ID, stored)
	}

	if order.ScheduledAt == nil {
		return []Reminder{}
	}

	out := make([]Reminder, 0, len(reminderPlan))
	for _, plan := range reminderPlan {
		sendAt := order.ScheduledAt.Add(plan.offset)
		out = append(out, Reminder{
			ID:          fmt.Sprintf("order-%d-%s", order.ID, plan.key),
			Label:       plan.label,
			SendAt:      &sendAt,
			SendAtLabel: formatTimestamp(&sendAt),
			Status:      reminderStatus(now, sendAt),
		})
	}
	return out
}

// storedReminders normalizes a metadata reminders list. Entries without a
// parseable send time are dropped.
func storedReminders(now time.Time, orderID int64, stored []any) []Reminder {
	out := make([]Reminder, 0, len(stored))
	for i, item := range stored {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		sendAt := parseReminderTime(obj["sendAt"])
		if sendAt == nil {
			continue
		}

		id, _ := obj["id"].(string)
		if strings.TrimSpace(id) == "" {
			id = fmt.Sprintf("order-%d-reminder-%d", orderID, i)
		}
		label, _ := obj["label"].(string)
		if strings.TrimSpace(label) == "" {
			label = "Visit reminder"
		}

		out = append(out, Reminder{
			ID:          strings.TrimSpace(id),
			Label:       strings.TrimSpace(label),
			SendAt:      sendAt,
			SendAtLabel: formatTimestamp(sendAt),
			Status:      reminderStatus(now, *sendAt),
		})
	}
	return out
}

func reminderStatus(now, sendAt time.Time) string {
	if sendAt.Before(now) {
		return "sent"
	}
	return "scheduled"
}

func parseReminderTime(v any) *time.Time {
	switch typed := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(typed)); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	case time.Time:
		utc := typed.UTC()
		return &utc
	}
	return nil
}
