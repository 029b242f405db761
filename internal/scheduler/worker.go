package scheduler

import (
	"context"
	"fmt"

	"edulure_backend/internal/email"
	"edulure_backend/platform/config"
	"edulure_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes scheduled tasks and delivers visit reminder emails.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender *email.Sender
	log    *logger.Logger
}

// NewWorker creates the asynq consumer from the Redis configuration.
func NewWorker(cfg config.SchedulerConfig, sender *email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskVisitReminder, w.handleVisitReminder)

	return w, nil
}

func (w *Worker) handleVisitReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseVisitReminderPayload(task)
	if err != nil {
		return err
	}

	name := payload.Name
	if name == "" {
		name = "Customer"
	}

	msg := email.Message{
		To:      payload.Email,
		ToName:  payload.Name,
		Subject: fmt.Sprintf("%s for service %s", payload.Label, payload.Reference),
		TextBody: fmt.Sprintf("Hi %s,\n\nThis is a reminder for your service %s: %s.\n\n"+
			"You can review the visit details in your workspace at any time.\n\n"+
			"The Edulure field services team", name, payload.Reference, payload.Label),
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		w.log.TaskError(TaskVisitReminder, err)
		return err
	}

	w.log.Info("visit reminder delivered", "reminder_id", payload.ReminderID, "order_id", payload.OrderID)
	return nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
