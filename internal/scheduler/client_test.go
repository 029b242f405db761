package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestScheduleVisitReminderNilClientIsNoop(t *testing.T) {
	var c *Client
	err := c.ScheduleVisitReminder(context.Background(), VisitReminderPayload{ReminderID: "r1"}, time.Now())
	if err != nil {
		t.Fatalf("nil client should be a no-op, got %v", err)
	}
}

func TestScheduleVisitReminderEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	c := &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: srv.Addr()}),
		queue:  "default",
	}
	defer c.Close()

	payload := VisitReminderPayload{
		ReminderID: "order-101-pre_visit",
		OrderID:    101,
		Label:      "Pre-visit checklist",
		Email:      "customer@example.com",
		Reference:  "SO-2026-101",
		SendAt:     time.Now().Add(time.Hour),
	}

	if err := c.ScheduleVisitReminder(context.Background(), payload, payload.SendAt); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	// Re-enqueueing the same reminder id must not error.
	if err := c.ScheduleVisitReminder(context.Background(), payload, payload.SendAt); err != nil {
		t.Fatalf("duplicate enqueue should be swallowed, got %v", err)
	}
}

func TestVisitReminderTaskRoundTrip(t *testing.T) {
	payload := VisitReminderPayload{ReminderID: "r1", OrderID: 7, Label: "Technician arrival confirmation"}

	task, err := NewVisitReminderTask(payload)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	if task.Type() != TaskVisitReminder {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	parsed, err := ParseVisitReminderPayload(task)
	if err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}
	if parsed != payload {
		t.Fatalf("payload round trip mismatch: %+v", parsed)
	}
}
